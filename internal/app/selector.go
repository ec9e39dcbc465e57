package app

import "hotel_pricer/internal/domain"

// Pick returns the better of two plans for the given number of adults.
// A nil argument means "no plan". Equal charges are settled by, in order:
// a non-smoking room, a full (not short) stay, and for two adults a twin
// room over a double room. Otherwise a is kept.
//
// Pick is not symmetric, so callers must fold in listing order.
func Pick(a, b *domain.PlanRecord, adults int) *domain.PlanRecord {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	if a.TotalCharge < b.TotalCharge {
		return a
	}
	if b.TotalCharge < a.TotalCharge {
		return b
	}

	if a.NonSmokingRoom() && !b.NonSmokingRoom() {
		return a
	}
	if b.NonSmokingRoom() && !a.NonSmokingRoom() {
		return b
	}

	if !a.IsShortStay() && b.IsShortStay() {
		return a
	}
	if !b.IsShortStay() && a.IsShortStay() {
		return b
	}

	if adults == 2 {
		if a.TwinRoom() && b.DoubleRoom() {
			return a
		}
		if b.TwinRoom() && a.DoubleRoom() {
			return b
		}
	}
	return a
}

// SelectCheapest folds Pick left to right over plans.
func SelectCheapest(plans []domain.PlanRecord, adults int) (domain.PlanRecord, bool) {
	var best *domain.PlanRecord
	for i := range plans {
		best = Pick(best, &plans[i], adults)
	}
	if best == nil {
		return domain.PlanRecord{}, false
	}
	return *best, true
}
