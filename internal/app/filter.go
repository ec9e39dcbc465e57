package app

import "hotel_pricer/internal/domain"

// Filter stage names, in the order they run.
const (
	StageAvoidWords = "avoid_words"
	StageRoomType   = "room_type"
	StageShortStay  = "short_stay"
)

// FilterOptions configures one pass of FilterPlans.
type FilterOptions struct {
	AvoidWords []string
	Adults     int
	Category   domain.RoomCategory
}

// TryFilter returns the plans for which keep is true, unless none are, in
// which case plans is returned unchanged. The input slice is never modified.
func TryFilter(plans []domain.PlanRecord, keep func(domain.PlanRecord) bool) ([]domain.PlanRecord, bool) {
	var out []domain.PlanRecord
	for _, p := range plans {
		if keep(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return plans, false
	}
	return out, true
}

// FilterPlans runs the avoid-word, room-type and short-stay stages in order.
// A stage that would leave nothing is skipped; its name is reported in skipped.
func FilterPlans(plans []domain.PlanRecord, opts FilterOptions) (out []domain.PlanRecord, skipped []string) {
	if len(plans) == 0 {
		return plans, nil
	}
	stages := []struct {
		name string
		keep func(domain.PlanRecord) bool
	}{
		{StageAvoidWords, func(p domain.PlanRecord) bool { return !p.HasAvoidWord(opts.AvoidWords) }},
		{StageRoomType, roomTypeRule(opts.Category, opts.Adults)},
		{StageShortStay, func(p domain.PlanRecord) bool { return !p.IsShortStay() }},
	}

	out = plans
	for _, st := range stages {
		var applied bool
		if out, applied = TryFilter(out, st.keep); !applied {
			skipped = append(skipped, st.name)
		}
	}
	return out, skipped
}

// roomTypeRule picks the room-type predicate for a query category.
func roomTypeRule(c domain.RoomCategory, adults int) func(domain.PlanRecord) bool {
	switch c {
	case domain.CategoryDouble:
		return func(p domain.PlanRecord) bool { return p.IsDouble() && !p.IsSemiDouble() }
	case domain.CategorySemiDouble:
		return domain.PlanRecord.IsSemiDouble
	case domain.CategoryTwin:
		return domain.PlanRecord.IsTwin
	default:
		// doubles suit one guest; semi-doubles are too small for two
		return func(p domain.PlanRecord) bool {
			if p.IsDouble() {
				return false
			}
			return adults != 2 || !p.IsSemiDouble()
		}
	}
}
