// Package metrics exposes list store activity as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/liststore"
	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "listkeeper"

// Metrics holds the collectors. It is registered on an explicit registry so
// tests and embedders never touch the global one.
type Metrics struct {
	saves     *prometheus.CounterVec
	failures  *prometheus.CounterVec
	items     *prometheus.GaugeVec
	completed *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Successful list saves",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "save_failures_total",
			Help:      "Failed list saves",
		}, []string{"kind"}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "items",
			Help:      "Items in the most recently saved list",
		}, []string{"kind"}),
		completed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "completed_items",
			Help:      "Done items in the most recently saved list",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.saves, m.failures, m.items, m.completed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observer returns a store observer that records activity under kind.
func Observer[P models.Payload[P]](m *Metrics, kind models.Kind) liststore.Observer[P] {
	label := string(kind)
	return liststore.ObserverFuncs[P]{
		OnDidSave: func(context.Context, uuid.UUID) {
			m.saves.WithLabelValues(label).Inc()
		},
		OnSnapshotChanged: func(_ context.Context, snap models.Snapshot[P]) {
			m.items.WithLabelValues(label).Set(float64(snap.Len()))
			m.completed.WithLabelValues(label).Set(float64(snap.CompletedCount()))
		},
		OnSaveFailed: func(context.Context, uuid.UUID, error) {
			m.failures.WithLabelValues(label).Inc()
		},
	}
}
