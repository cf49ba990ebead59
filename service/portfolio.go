// Package service exposes the portfolio document through fetch and replace.
// It holds no copy of the document between calls; every call goes to the store.
package service

import (
	"context"
	"errors"
	"time"

	"portfolio-complete/core"
	"portfolio-complete/metrics"

	"github.com/sirupsen/logrus"
)

// ErrNilDocument is returned by Replace before the store is touched.
var ErrNilDocument = errors.New("nil document")

// Notifier is told after every successful replace.
type Notifier interface {
	Replaced()
}

type Service struct {
	store    core.DocumentStore
	notifier Notifier
}

// New returns a Service over store. notifier may be nil.
func New(store core.DocumentStore, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

func (s *Service) Fetch(ctx context.Context) (*core.Document, error) {
	start := time.Now()
	document, err := s.store.Find(ctx)
	metrics.StoreLatency.WithLabelValues("find").Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, core.ErrNotFound):
		metrics.Fetches.WithLabelValues(metrics.ResultNotFound).Inc()
		return nil, err
	case err != nil:
		metrics.Fetches.WithLabelValues(metrics.ResultError).Inc()
		logrus.WithField("error", err).Error("Failed to fetch portfolio")
		return nil, err
	}
	metrics.Fetches.WithLabelValues(metrics.ResultOK).Inc()
	return document, nil
}

// Replace overwrites the stored document. Concurrent replaces are not
// detected; the last one to commit wins.
func (s *Service) Replace(ctx context.Context, document *core.Document) error {
	if document == nil {
		return ErrNilDocument
	}

	start := time.Now()
	err := s.store.Replace(ctx, document)
	metrics.StoreLatency.WithLabelValues("replace").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Replaces.WithLabelValues(metrics.ResultError).Inc()
		logrus.WithField("error", err).Error("Failed to replace portfolio")
		return err
	}
	metrics.Replaces.WithLabelValues(metrics.ResultOK).Inc()
	logrus.WithFields(logrus.Fields{
		"projects": len(document.Projects),
		"skills":   len(document.Skills),
	}).Info("Portfolio replaced")

	if s.notifier != nil {
		s.notifier.Replaced()
	}
	return nil
}
