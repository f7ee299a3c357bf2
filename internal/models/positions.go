package models

import (
	"TaiGate/pkg/errors"
)

// Position is the broker-neutral open position returned by an adapter.
type Position struct {
	Account      string
	Symbol       string
	Quantity     int
	Side         Side
	AveragePrice float64
	UnrealizedPL float64
	RealizedPL   float64
}

// PositionRecord is one record of a position query reply. Account and
// product are mandatory; everything else zero-fills when the broker sends
// a blank field, so a partial payload degrades instead of failing.
type PositionRecord struct {
	InvestorAccount string
	ProductID       string

	YesterdayLong  int
	YesterdayShort int
	TodayLong      int
	TodayShort     int
	CurrentLong    int
	CurrentShort   int

	ReferencePrice float64
	AvgCostLong    float64
	AvgCostShort   float64
	RealizedPL     float64
	UnrealizedPL   float64

	Currency string
}

var ErrPositionRecordIdentity = errors.New("POSITION RECORD REQUIRES ACCOUNT AND PRODUCT")

// NewPositionRecord validates the mandatory identifiers. Optional fields
// are set by the caller afterwards and keep their zero defaults otherwise.
func NewPositionRecord(investorAccount, productID string) (*PositionRecord, error) {
	if investorAccount == "" || productID == "" {
		return nil, ErrPositionRecordIdentity
	}
	return &PositionRecord{
		InvestorAccount: investorAccount,
		ProductID:       productID,
	}, nil
}

// HasPosition reports whether the record carries any open quantity.
func (p *PositionRecord) HasPosition() bool {
	return p.CurrentLong != 0 || p.CurrentShort != 0
}

// NetQuantity is positive long, negative short.
func (p *PositionRecord) NetQuantity() int {
	return p.CurrentLong - p.CurrentShort
}
