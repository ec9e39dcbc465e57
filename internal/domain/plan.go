package domain

import (
	"fmt"
	"strings"
	"time"
)

// Room and plan name markers as they appear in Rakuten Travel listings.
const (
	MarkerShortStay  = "ショート"
	MarkerSemiDouble = "セミダブル"
	MarkerDouble     = "ダブル"
	MarkerTwin       = "ツイン"
	MarkerNonSmoking = "禁煙"
)

// DefaultAvoidWords marks promotional plans (senior, birthday, late check-in,
// ladies, evening check-in) that are not comparable to a standard stay.
var DefaultAvoidWords = []string{"シニア", "バースデ", "レイト", "レディース", "18時", "19時"}

// PlanRecord is one candidate plan taken from a vacancy listing.
// It is passed by value and never modified after construction.
type PlanRecord struct {
	PlanName    string `json:"plan_name"`
	RoomName    string `json:"room_name"`
	TotalCharge int    `json:"total_charge"`
}

func (p PlanRecord) IsShortStay() bool {
	return strings.Contains(p.PlanName, MarkerShortStay)
}

func (p PlanRecord) IsSemiDouble() bool {
	return strings.Contains(p.RoomName, MarkerSemiDouble) || strings.Contains(p.PlanName, MarkerSemiDouble)
}

// IsDouble also matches semi-double rooms since the marker is a substring.
func (p PlanRecord) IsDouble() bool {
	return strings.Contains(p.RoomName, MarkerDouble) || strings.Contains(p.PlanName, MarkerDouble)
}

func (p PlanRecord) IsTwin() bool {
	return strings.Contains(p.RoomName, MarkerTwin) || strings.Contains(p.PlanName, MarkerTwin)
}

// HasAvoidWord reports whether the plan name contains any of words.
func (p PlanRecord) HasAvoidWord(words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(p.PlanName, w) {
			return true
		}
	}
	return false
}

// Room name only checks, used by the selector tie-break.
func (p PlanRecord) roomHas(marker string) bool { return strings.Contains(p.RoomName, marker) }

func (p PlanRecord) NonSmokingRoom() bool { return p.roomHas(MarkerNonSmoking) }
func (p PlanRecord) TwinRoom() bool       { return p.roomHas(MarkerTwin) }
func (p PlanRecord) DoubleRoom() bool     { return p.roomHas(MarkerDouble) }

type RoomCategory int

const (
	CategoryNone RoomCategory = iota
	CategoryDouble
	CategorySemiDouble
	CategoryTwin
)

// ReportCategories are iterated, in order, by the per-category report mode.
var ReportCategories = []RoomCategory{CategoryDouble, CategorySemiDouble, CategoryTwin}

func (c RoomCategory) String() string {
	switch c {
	case CategoryDouble:
		return "double"
	case CategorySemiDouble:
		return "semi_double"
	case CategoryTwin:
		return "twin"
	default:
		return "none"
	}
}

// Label is the column text written to the report.
func (c RoomCategory) Label() string {
	switch c {
	case CategoryDouble:
		return MarkerDouble
	case CategorySemiDouble:
		return MarkerSemiDouble
	case CategoryTwin:
		return MarkerTwin
	default:
		return ""
	}
}

func ParseRoomCategory(s string) (RoomCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CategoryNone, nil
	case "double":
		return CategoryDouble, nil
	case "semi_double", "semidouble", "semi-double":
		return CategorySemiDouble, nil
	case "twin":
		return CategoryTwin, nil
	}
	return CategoryNone, fmt.Errorf("unknown room category %q", s)
}

const unresolved = "---"

// HotelRef identifies a hotel. UnresolvedHotel stands in for a lookup that
// failed or an identifier that was not numeric.
type HotelRef struct {
	HotelNo   string `json:"hotel_no"`
	HotelName string `json:"hotel_name"`
}

var UnresolvedHotel = HotelRef{HotelNo: unresolved, HotelName: unresolved}

func (h HotelRef) Resolved() bool { return IsHotelNo(h.HotelNo) }

// IsHotelNo reports whether s is a plain decimal hotel number.
func IsHotelNo(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PriceCell is the outcome of one (hotel, date, adults, category) query.
type PriceCell struct {
	Hotel    HotelRef
	StayDate time.Time
	Adults   int
	Category RoomCategory
	Plan     PlanRecord
	Found    bool
}

// Price is the selected plan's total charge, or 0 when no plan was found.
func (c PriceCell) Price() int {
	if !c.Found {
		return 0
	}
	return c.Plan.TotalCharge
}
