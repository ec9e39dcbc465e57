package domain

import (
	"context"
	"time"
)

// PlanQuery describes one vacancy search for a stay window.
type PlanQuery struct {
	Hotel    HotelRef
	Checkin  time.Time
	Checkout time.Time
	Adults   int
	Category RoomCategory // hint only; filtering happens locally
}

type HotelResolver interface {
	GetHotel(ctx context.Context, hotelNo string) (HotelRef, error)
}

type PlanSearcher interface {
	SearchPlans(ctx context.Context, q PlanQuery) ([]PlanRecord, error)
}

// PriceRepository persists the final cells of a run.
type PriceRepository interface {
	SaveCells(ctx context.Context, runID string, cells []PriceCell) error
	ListPrices(ctx context.Context, hotelNo string, limit int) ([]StoredPrice, error)
}

// StoredPrice is a persisted PriceCell.
type StoredPrice struct {
	RunID       string    `json:"run_id"`
	HotelNo     string    `json:"hotel_no"`
	HotelName   string    `json:"hotel_name"`
	StayDate    time.Time `json:"stay_date"`
	Adults      int       `json:"adults"`
	Category    string    `json:"category"`
	Found       bool      `json:"found"`
	TotalCharge int       `json:"total_charge"`
	PlanName    string    `json:"plan_name,omitempty"`
	RoomName    string    `json:"room_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
