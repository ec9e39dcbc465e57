package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_pricer/internal/adapters/observability"
	"hotel_pricer/internal/domain"
)

type ReportMode string

const (
	// ModePair writes one row per hotel: name, then price for 1 and 2 adults per date.
	ModePair ReportMode = "pair"
	// ModeCategory writes one row per hotel and room category.
	ModeCategory ReportMode = "category"
)

func ParseReportMode(s string) (ReportMode, error) {
	switch ReportMode(s) {
	case "", ModePair:
		return ModePair, nil
	case ModeCategory:
		return ModeCategory, nil
	}
	return "", fmt.Errorf("unknown report mode %q", s)
}

// Report is the outcome of a Run.
type Report struct {
	Rows  [][]string
	Cells []domain.PriceCell
}

// occupancies queried for every date, in column order.
var occupancies = []int{1, 2}

type PriceQueryService struct {
	hotels     domain.HotelResolver
	plans      domain.PlanSearcher
	avoidWords []string
}

func NewPriceQueryService(h domain.HotelResolver, p domain.PlanSearcher, avoidWords []string) *PriceQueryService {
	return &PriceQueryService{hotels: h, plans: p, avoidWords: avoidWords}
}

// ResolveHotel looks up a hotel by number. Non-numeric input and failed
// lookups yield domain.UnresolvedHotel; non-numeric input never hits the resolver.
func (s *PriceQueryService) ResolveHotel(ctx context.Context, hotelNo string) domain.HotelRef {
	if !domain.IsHotelNo(hotelNo) {
		log.Debug().Str("hotel_no", hotelNo).Msg("hotel number is not numeric")
		return domain.UnresolvedHotel
	}
	h, err := s.hotels.GetHotel(ctx, hotelNo)
	if err != nil {
		log.Warn().Err(err).Str("hotel_no", hotelNo).Msg("hotel lookup failed")
		return domain.UnresolvedHotel
	}
	if !h.Resolved() {
		return domain.UnresolvedHotel
	}
	return h
}

// BestPlan searches a one-night stay starting at stayDate and returns the
// cheapest eligible plan. Search failures are logged and yield an absent cell.
func (s *PriceQueryService) BestPlan(ctx context.Context, hotel domain.HotelRef, stayDate time.Time, adults int, cat domain.RoomCategory) domain.PriceCell {
	cell := domain.PriceCell{Hotel: hotel, StayDate: stayDate, Adults: adults, Category: cat}
	if !hotel.Resolved() {
		observability.ObserveCell(false)
		return cell
	}

	plans, err := s.plans.SearchPlans(ctx, domain.PlanQuery{
		Hotel:    hotel,
		Checkin:  stayDate,
		Checkout: stayDate.AddDate(0, 0, 1),
		Adults:   adults,
		Category: cat,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("hotel_no", hotel.HotelNo).
			Time("date", stayDate).
			Int("adults", adults).
			Msg("plan search failed")
		plans = nil
	}

	filtered, skipped := FilterPlans(plans, FilterOptions{AvoidWords: s.avoidWords, Adults: adults, Category: cat})
	for _, st := range skipped {
		observability.ObserveFilterSkip(st)
	}
	cell.Plan, cell.Found = SelectCheapest(filtered, adults)
	observability.ObserveCell(cell.Found)

	log.Debug().
		Str("hotel_no", hotel.HotelNo).
		Str("date", stayDate.Format(time.DateOnly)).
		Int("adults", adults).
		Stringer("category", cat).
		Int("candidates", len(plans)).
		Int("eligible", len(filtered)).
		Strs("skipped", skipped).
		Int("price", cell.Price()).
		Msg("cell")
	return cell
}

// Run queries every hotel and date in input order, one cell at a time.
func (s *PriceQueryService) Run(ctx context.Context, hotelNos []string, dates []time.Time, mode ReportMode) Report {
	b := NewReportBuilder()
	var cells []domain.PriceCell

	for _, no := range hotelNos {
		hotel := s.ResolveHotel(ctx, no)
		switch mode {
		case ModeCategory:
			for _, cat := range domain.ReportCategories {
				b.StartRow(hotel.HotelName, cat.Label())
				cells = s.fillRow(ctx, b, cells, hotel, dates, cat)
			}
		default:
			b.StartRow(hotel.HotelName)
			cells = s.fillRow(ctx, b, cells, hotel, dates, domain.CategoryNone)
		}
		log.Info().Str("hotel_no", no).Str("hotel", hotel.HotelName).Msg("hotel done")
	}
	return Report{Rows: b.Rows(), Cells: cells}
}

func (s *PriceQueryService) fillRow(ctx context.Context, b *ReportBuilder, cells []domain.PriceCell, hotel domain.HotelRef, dates []time.Time, cat domain.RoomCategory) []domain.PriceCell {
	for _, d := range dates {
		for _, n := range occupancies {
			c := s.BestPlan(ctx, hotel, d, n, cat)
			b.AddPrice(c)
			cells = append(cells, c)
		}
	}
	return cells
}
