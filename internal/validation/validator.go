// Package validation normalizes raw estimate payloads into a
// model.ValuationRequest. Validation stops at the first violated constraint.
//
// The strictness is deliberately uneven and inherited from the original
// contract: an unknown industry rejects the request, while an unknown region
// or exit status silently falls back to its default.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/valuai/valuai/internal/model"
)

// Kind identifies which constraint a request violated.
type Kind string

const (
	MissingField     Kind = "MissingField"
	InvalidRevenue   Kind = "InvalidRevenue"
	InvalidEmployees Kind = "InvalidEmployees"
	InvalidIndustry  Kind = "InvalidIndustry"
)

// Error is a validation failure. It names the first violated constraint only.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Normalize checks and coerces a raw payload into a ValuationRequest.
// It is a pure function of its input: no side effects, deterministic output.
func Normalize(raw map[string]any) (model.ValuationRequest, *Error) {
	var req model.ValuationRequest

	for _, field := range []string{"revenue", "industry"} {
		if _, ok := raw[field]; !ok {
			return req, &Error{MissingField, fmt.Sprintf("missing required field: %s", field)}
		}
	}
	employeesRaw, ok := raw["employees"]
	if !ok {
		// team_size is the legacy name for employees
		if employeesRaw, ok = raw["team_size"]; !ok {
			return req, &Error{MissingField, "missing required field: employees"}
		}
	}

	revenue, ok := toFloat(raw["revenue"])
	if !ok || revenue < 0 || math.IsInf(revenue, 0) || math.IsNaN(revenue) {
		return req, &Error{InvalidRevenue, "revenue must be a non-negative number"}
	}

	employees, ok := toInt(employeesRaw)
	if !ok || employees < 1 {
		return req, &Error{InvalidEmployees, "employees must be an integer of at least 1"}
	}

	industry, ok := raw["industry"].(string)
	if !ok || !model.IsValidIndustry(industry) {
		return req, &Error{InvalidIndustry, fmt.Sprintf(
			"industry must be one of: %s", strings.Join(model.Industries, ", "))}
	}

	req.Revenue = revenue
	req.Employees = employees
	req.Industry = industry

	// Optional fields: invalid values coerce to defaults, they never reject.
	req.FundingRounds = 1
	if v, ok := toInt(raw["funding_rounds"]); ok && v >= 0 {
		req.FundingRounds = v
	}

	if v, ok := toFloat(raw["funding_amount"]); ok && v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
		req.FundingAmount = v
	}

	if v, ok := toFloat(raw["market_share"]); ok && v >= 0 && v <= 100 {
		req.MarketShare = v
	}

	if v, ok := raw["profitable"].(bool); ok {
		req.Profitable = v
	}

	currentYear := time.Now().Year()
	req.YearFounded = currentYear
	if v, ok := toInt(raw["year_founded"]); ok && v >= 1900 && v <= currentYear {
		req.YearFounded = v
	}

	req.Region = model.DefaultRegion
	if v, ok := raw["region"].(string); ok && model.IsValidRegion(v) {
		req.Region = v
	}

	req.ExitStatus = model.DefaultExitStatus
	if v, ok := raw["exit_status"].(string); ok && (v == model.ExitIPO || v == model.ExitPrivate) {
		req.ExitStatus = v
	}

	return req, nil
}

// toFloat coerces JSON numbers and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toInt coerces JSON numbers and numeric strings to int. Fractional values
// do not coerce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
