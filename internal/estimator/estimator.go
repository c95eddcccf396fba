// Package estimator computes startup valuations. It tries the remote
// prediction service first and substitutes a deterministic local formula on
// any failure, so callers always get a usable number.
package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/valuai/valuai/internal/model"
)

// Provenance marks where a valuation came from.
type Provenance string

const (
	ProvenanceRemote   Provenance = "remote"
	ProvenanceFallback Provenance = "fallback"
)

// Estimate is a computed valuation and its provenance.
type Estimate struct {
	Valuation  float64
	Provenance Provenance
}

// Estimator produces a valuation for a normalized request. Implementations
// never fail: remote errors are absorbed into the fallback branch.
type Estimator interface {
	Estimate(ctx context.Context, req model.ValuationRequest) Estimate
}

// Config bundles the remote endpoint settings.
type Config struct {
	BaseURL        string
	RateLimiter    *rate.Limiter
	RequestTimeout time.Duration
}

func DefaultConfig(baseURL string, requestsPerSecond float64) *Config {
	return &Config{
		BaseURL:        baseURL,
		RateLimiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 10),
		RequestTimeout: 10 * time.Second,
	}
}

type remoteEstimator struct {
	config *Config
	client *http.Client
	logger *logrus.Logger
}

// New creates an Estimator backed by the remote prediction service at
// config.BaseURL, with the local formula as fallback.
func New(config *Config, logger *logrus.Logger) Estimator {
	return &remoteEstimator{
		config: config,
		client: &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}
}

// predictionResponse covers both response shapes the prediction service has
// used across versions.
type predictionResponse struct {
	Valuation          *float64 `json:"valuation"`
	PredictedValuation *float64 `json:"predicted_valuation"`
}

func (e *remoteEstimator) Estimate(ctx context.Context, req model.ValuationRequest) Estimate {
	valuation, err := e.predict(ctx, req)
	if err != nil {
		e.logger.WithError(err).Warn("Prediction service unavailable, using fallback formula")
		return Estimate{Valuation: Fallback(req), Provenance: ProvenanceFallback}
	}
	return Estimate{Valuation: valuation, Provenance: ProvenanceRemote}
}

func (e *remoteEstimator) predict(ctx context.Context, req model.ValuationRequest) (float64, error) {
	if err := e.config.RateLimiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(remotePayload(req))
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.RequestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.config.BaseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("prediction call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("prediction service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	var parsed predictionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("parse response: %w", err)
	}

	value := parsed.Valuation
	if value == nil {
		value = parsed.PredictedValuation
	}
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return 0, fmt.Errorf("prediction response has no usable valuation field")
	}

	return math.Max(0, *value), nil
}

// remotePayload sends employees under both its current and legacy names so
// older prediction service versions keep working.
func remotePayload(req model.ValuationRequest) map[string]any {
	return map[string]any{
		"revenue":        req.Revenue,
		"employees":      req.Employees,
		"team_size":      req.Employees,
		"industry":       req.Industry,
		"funding_rounds": req.FundingRounds,
		"funding_amount": req.FundingAmount,
		"market_share":   req.MarketShare,
		"profitable":     req.Profitable,
		"year_founded":   req.YearFounded,
		"region":         req.Region,
		"exit_status":    req.ExitStatus,
	}
}

// Fallback computes the local deterministic valuation. Identical inputs
// always produce identical output.
func Fallback(req model.ValuationRequest) float64 {
	industryMult, ok := model.IndustryMultipliers[req.Industry]
	if !ok {
		industryMult = model.DefaultIndustryMultiplier
	}
	regionMult, ok := model.RegionMultipliers[req.Region]
	if !ok {
		regionMult = model.DefaultRegionMultiplier
	}

	exitMult := 1.0
	if req.ExitStatus == model.ExitIPO {
		exitMult = model.IPOMultiplier
	}
	profitMult := 1.0
	if req.Profitable {
		profitMult = model.ProfitableMultiplier
	}

	base := req.Revenue*industryMult +
		req.FundingAmount*model.FundingAmountFactor +
		float64(req.Employees)*model.PerEmployeeValue +
		req.MarketShare*model.MarketSharePointValue

	return base * regionMult * exitMult * profitMult
}
