package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/backup"
	"github.com/dmitrijs2005/listkeeper/internal/config"
	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/metrics"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/dmitrijs2005/listkeeper/internal/money"
	"github.com/dmitrijs2005/listkeeper/internal/services"
)

// App is the interactive shell state: the selected plan and its open list.
type App struct {
	config   *config.Config
	plans    *services.PlanService
	log      logging.Logger
	metrics  *metrics.Metrics
	money    *money.Cache
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
	exporter func(ctx context.Context) (services.Exporter, error)

	plan    *models.Plan
	listing []models.Plan
	session session
}

// NewApp builds a shell reading stdin and writing stdout. m may be nil to
// disable metrics.
func NewApp(c *config.Config, plans *services.PlanService, log logging.Logger, m *metrics.Metrics) *App {
	a := &App{
		config:  c,
		plans:   plans,
		log:     log,
		metrics: m,
		money:   money.NewCache(c.MoneyCacheSize),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		now:     time.Now,
	}
	a.exporter = a.s3Exporter
	return a
}

func (a *App) s3Exporter(ctx context.Context) (services.Exporter, error) {
	if a.config.S3Bucket == "" {
		return nil, backup.ErrNotConfigured
	}
	client, err := backup.NewS3Client(ctx, backup.Settings{
		Bucket:       a.config.S3Bucket,
		Region:       a.config.S3Region,
		BaseEndpoint: a.config.S3BaseEndpoint,
		AccessKey:    a.config.S3AccessKey,
		SecretKey:    a.config.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return backup.NewExporter(client, a.config.S3Bucket), nil
}

// Run starts the shell and returns when input ends, the user exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.closeSession()
	fmt.Fprintln(a.out, "Welcome to listkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, interactive())
}

func (a *App) status() string {
	if a.plan == nil {
		return ""
	}
	if a.session == nil {
		return fmt.Sprintf("(%s)", a.plan.Title)
	}
	return fmt.Sprintf("(%s/%s)", a.plan.Title, a.session.Kind())
}

func (a *App) formatMoney(currency string, amount float64) string {
	return a.money.Format(a.config.Locale, currency, amount)
}

func (a *App) closeSession() {
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
}

// openList opens kind for the selected plan and makes it the current list.
func (a *App) openList(ctx context.Context, kind models.Kind) error {
	if a.plan == nil {
		return errNoPlan
	}

	var s session
	switch kind {
	case models.KindShopping:
		st, err := a.plans.OpenShopping(ctx, a.plan.ID)
		if err != nil {
			return err
		}
		s = newSession(st, kind, shoppingCodec, a.formatMoney, a.metrics)
	default:
		st, err := a.plans.OpenTasks(ctx, a.plan.ID, kind)
		if err != nil {
			return err
		}
		s = newSession(st, kind, taskCodec, a.formatMoney, a.metrics)
	}

	a.closeSession()
	a.session = s
	return nil
}

// current returns the open list or errNoList. Each command starts with no
// recorded save failure.
func (a *App) current() (session, error) {
	if a.plan == nil {
		return nil, errNoPlan
	}
	if a.session == nil {
		return nil, errNoList
	}
	a.session.resetFailure()
	return a.session, nil
}

// report prints the outcome of a store operation. A save that failed during
// this command is returned as an error; anything else that changed nothing
// is a no-op.
func (a *App) report(s session, changed bool, msg string) error {
	if changed {
		if msg != "" {
			fmt.Fprintln(a.out, msg)
		}
		return nil
	}
	if err := s.Failure(); err != nil {
		return fmt.Errorf("not saved: %w", err)
	}
	fmt.Fprintln(a.out, "Nothing changed")
	return nil
}
