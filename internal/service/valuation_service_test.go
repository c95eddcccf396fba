package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/valuai/valuai/internal/estimator"
	"github.com/valuai/valuai/internal/model"
)

// MockValuationRepository is a mock implementation of ValuationRepository for testing
type MockValuationRepository struct {
	mock.Mock
}

func (m *MockValuationRepository) Create(ctx context.Context, record *model.ValuationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockValuationRepository) ListPage(ctx context.Context, limit, page int) ([]model.ValuationRecord, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ValuationRecord), args.Error(1)
}

func (m *MockValuationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockValuationRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubEstimator returns a fixed estimate without any remote call
type stubEstimator struct {
	estimate estimator.Estimate
}

func (s *stubEstimator) Estimate(ctx context.Context, req model.ValuationRequest) estimator.Estimate {
	return s.estimate
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRequest() model.ValuationRequest {
	return model.ValuationRequest{
		Revenue:    5,
		Employees:  10,
		Industry:   "FinTech",
		Region:     model.DefaultRegion,
		ExitStatus: model.ExitPrivate,
	}
}

func TestEstimatePersistsRecord(t *testing.T) {
	repo := new(MockValuationRepository)
	est := &stubEstimator{estimate: estimator.Estimate{
		Valuation:  600060,
		Provenance: estimator.ProvenanceFallback,
	}}
	svc := NewValuationService(repo, est, testLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ValuationRecord) bool {
		return r.ValuationResult == 600060 && r.Industry == "FinTech"
	})).Return(nil)

	result, err := svc.Estimate(context.Background(), testRequest())

	assert.NoError(t, err)
	assert.Equal(t, 600060.0, result.Valuation)
	assert.Equal(t, estimator.ProvenanceFallback, result.Provenance)
	assert.NotEqual(t, result.QueryID.String(), "00000000-0000-0000-0000-000000000000")
	repo.AssertExpectations(t)
}

func TestEstimatePersistenceErrorPropagates(t *testing.T) {
	repo := new(MockValuationRepository)
	est := &stubEstimator{estimate: estimator.Estimate{
		Valuation:  100,
		Provenance: estimator.ProvenanceRemote,
	}}
	svc := NewValuationService(repo, est, testLogger())

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	result, err := svc.Estimate(context.Background(), testRequest())

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestHistoryPaginationMath(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int64
	}{
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"empty store", 0, 10, 0},
		{"single record", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockValuationRepository)
			svc := NewValuationService(repo, &stubEstimator{}, testLogger())

			repo.On("Count", mock.Anything).Return(tt.total, nil)
			repo.On("ListPage", mock.Anything, tt.limit, 1).Return([]model.ValuationRecord{}, nil)

			page, err := svc.History(context.Background(), tt.limit, 1)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestHistoryClampsLimitAndPage(t *testing.T) {
	repo := new(MockValuationRepository)
	svc := NewValuationService(repo, &stubEstimator{}, testLogger())

	repo.On("Count", mock.Anything).Return(int64(5), nil)
	repo.On("ListPage", mock.Anything, MaxHistoryLimit, 1).Return([]model.ValuationRecord{}, nil)

	page, err := svc.History(context.Background(), 5000, -3)

	assert.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, page.Limit)
	assert.Equal(t, 1, page.Page)
	repo.AssertExpectations(t)
}

func TestHistoryZeroLimitUsesDefault(t *testing.T) {
	repo := new(MockValuationRepository)
	svc := NewValuationService(repo, &stubEstimator{}, testLogger())

	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("ListPage", mock.Anything, DefaultHistoryLimit, 1).Return([]model.ValuationRecord{}, nil)

	page, err := svc.History(context.Background(), 0, 1)

	assert.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, page.Limit)
}

func TestHistoryRepositoryErrorPropagates(t *testing.T) {
	repo := new(MockValuationRepository)
	svc := NewValuationService(repo, &stubEstimator{}, testLogger())

	repo.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := svc.History(context.Background(), 10, 1)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	repo := new(MockValuationRepository)
	svc := NewValuationService(repo, &stubEstimator{}, testLogger())

	repo.On("Ping", mock.Anything).Return(nil).Once()
	assert.True(t, svc.HealthCheck(context.Background()))

	repo.On("Ping", mock.Anything).Return(errors.New("dial error")).Once()
	assert.False(t, svc.HealthCheck(context.Background()))
}
