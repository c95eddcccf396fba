package model

import (
	"time"

	"github.com/google/uuid"
)

// ValuationRequest is a normalized estimate request: every field type and
// range checked, every optional field defaulted.
type ValuationRequest struct {
	Revenue       float64 `json:"revenue"`
	Employees     int     `json:"employees"`
	Industry      string  `json:"industry"`
	FundingRounds int     `json:"funding_rounds"`
	FundingAmount float64 `json:"funding_amount"`
	MarketShare   float64 `json:"market_share"`
	Profitable    bool    `json:"profitable"`
	YearFounded   int     `json:"year_founded"`
	Region        string  `json:"region"`
	ExitStatus    string  `json:"exit_status"`
}

// ValuationRecord is one persisted estimate. Records are written once and
// never updated; history reads are projections over them.
type ValuationRecord struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Revenue         float64   `gorm:"column:revenue;type:numeric" json:"revenue"`
	Employees       int       `gorm:"column:employees" json:"employees"`
	Industry        string    `gorm:"column:industry" json:"industry"`
	FundingRounds   int       `gorm:"column:funding_rounds" json:"funding_rounds"`
	FundingAmount   float64   `gorm:"column:funding_amount;type:numeric" json:"funding_amount"`
	MarketShare     float64   `gorm:"column:market_share;type:numeric" json:"market_share"`
	Profitable      bool      `gorm:"column:profitable" json:"profitable"`
	YearFounded     int       `gorm:"column:year_founded" json:"year_founded"`
	Region          string    `gorm:"column:region" json:"region"`
	ExitStatus      string    `gorm:"column:exit_status" json:"exit_status"`
	ValuationResult float64   `gorm:"column:valuation_result;type:numeric" json:"valuation_result"`
	CreatedAt       time.Time `gorm:"column:created_at;default:now()" json:"createdAt"`
}

func (ValuationRecord) TableName() string {
	return "valuation_queries"
}

// NewValuationRecord builds the persisted record for a request and its
// computed valuation. The id and timestamp are assigned here, server-side.
func NewValuationRecord(req ValuationRequest, valuation float64) *ValuationRecord {
	return &ValuationRecord{
		ID:              uuid.New(),
		Revenue:         req.Revenue,
		Employees:       req.Employees,
		Industry:        req.Industry,
		FundingRounds:   req.FundingRounds,
		FundingAmount:   req.FundingAmount,
		MarketShare:     req.MarketShare,
		Profitable:      req.Profitable,
		YearFounded:     req.YearFounded,
		Region:          req.Region,
		ExitStatus:      req.ExitStatus,
		ValuationResult: valuation,
		CreatedAt:       time.Now().UTC(),
	}
}
