// Package backup exports plans as JSON documents to S3-compatible object
// storage.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned when no bucket is set.
var ErrNotConfigured = errors.New("export bucket not configured")

// Settings are the object storage parameters.
type Settings struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// PutObjectAPI is the part of *s3.Client the exporter uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) PutObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// NewS3Client builds a client for s. Static credentials are used when an
// access key is set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, s Settings) (PutObjectAPI, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.Region)}
	if s.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Document is the exported form of a plan.
type Document struct {
	Plan       models.Plan `json:"plan"`
	ExportedAt time.Time   `json:"exported_at"`
	Lists      []any       `json:"lists"`
}

// Exporter uploads documents to one bucket.
type Exporter struct {
	client PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewExporter(client PutObjectAPI, bucket string) *Exporter {
	return &Exporter{client: client, bucket: bucket, now: time.Now}
}

// StorageKey returns a unique object key for a plan export.
func StorageKey(planID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("plans/%s/%d/%02d/%02d/%v.json", planID, at.Year(), at.Month(), at.Day(), uuid.New())
}

// Export uploads the plan and the given list snapshots and returns the
// object key.
func (e *Exporter) Export(ctx context.Context, plan models.Plan, lists ...any) (string, error) {
	if e.bucket == "" {
		return "", ErrNotConfigured
	}
	now := e.now().UTC()
	body, err := json.MarshalIndent(Document{Plan: plan, ExportedAt: now, Lists: lists}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	key := StorageKey(plan.ID, now)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}
