package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/valuai/valuai/internal/estimator"
	"github.com/valuai/valuai/internal/metrics"
	"github.com/valuai/valuai/internal/model"
	"github.com/valuai/valuai/internal/repository"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// EstimateResult is the outcome of one estimate pipeline run.
type EstimateResult struct {
	Valuation  float64
	QueryID    uuid.UUID
	Provenance estimator.Provenance
	Input      model.ValuationRequest
}

// HistoryPage is one page of persisted valuation records, newest first.
type HistoryPage struct {
	Records []model.ValuationRecord
	Page    int
	Limit   int
	Total   int64
	Pages   int64
}

// ValuationService orchestrates the estimate pipeline: estimate, record,
// shape the result. Prediction failures never surface here; persistence
// failures do.
type ValuationService struct {
	repo      repository.ValuationRepository
	estimator estimator.Estimator
	logger    *logrus.Logger
}

func NewValuationService(repo repository.ValuationRepository, est estimator.Estimator, logger *logrus.Logger) *ValuationService {
	return &ValuationService{
		repo:      repo,
		estimator: est,
		logger:    logger,
	}
}

// Estimate runs the pipeline for an already-normalized request. The returned
// error is always a persistence failure.
func (s *ValuationService) Estimate(ctx context.Context, req model.ValuationRequest) (*EstimateResult, error) {
	start := time.Now()

	est := s.estimator.Estimate(ctx, req)
	metrics.RecordEstimate(string(est.Provenance))

	record := model.NewValuationRecord(req, est.Valuation)
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithError(err).Error("Failed to persist valuation record")
		return nil, err
	}

	metrics.ObserveEstimateDuration(time.Since(start))
	s.logger.WithFields(logrus.Fields{
		"query_id":   record.ID,
		"industry":   req.Industry,
		"provenance": est.Provenance,
		"valuation":  est.Valuation,
	}).Info("Estimate served")

	return &EstimateResult{
		Valuation:  est.Valuation,
		QueryID:    record.ID,
		Provenance: est.Provenance,
		Input:      req,
	}, nil
}

// History returns one page of past estimates, newest first. Out-of-range
// limit and page values are clamped, not rejected.
func (s *ValuationService) History(ctx context.Context, limit, page int) (*HistoryPage, error) {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListPage(ctx, limit, page)
	if err != nil {
		return nil, err
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &HistoryPage{
		Records: records,
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
	}, nil
}

// HealthCheck reports whether the valuation store is reachable.
func (s *ValuationService) HealthCheck(ctx context.Context) bool {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.WithError(err).Warn("Database health check failed")
		return false
	}
	return true
}
