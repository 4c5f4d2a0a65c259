package domain

// CapacityGuard performs the advisory admission check. It is advisory in the
// sense that it never mutates event status; an event shows as full only for
// the request that hit the limit, and frees up again if a paid spot is
// refunded.
type CapacityGuard struct{}

// Admit reports whether one more registration fits. A nil capacity means
// unlimited. attendingCount must already exclude pending rows; only paid and
// walk-up registrations occupy spots.
func (CapacityGuard) Admit(capacity *int, attendingCount int) error {
	if capacity == nil {
		return nil
	}
	if attendingCount >= *capacity {
		return ErrSoldOut
	}
	return nil
}
