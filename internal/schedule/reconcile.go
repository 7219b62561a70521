package schedule

import "time"

// maxBoundaries caps boundary enumeration so a pathological config or a
// wildly wrong clock can never loop forever.
const maxBoundaries = 10000

// MissedBetween returns every work-hours check-in boundary strictly between
// lastCheck and now, in ascending order. Both endpoints are exclusive: a
// check-in that already fired at lastCheck is not re-surfaced, and a
// boundary landing exactly on now belongs to the regular timer, not to
// reconciliation.
//
// The result is what a caller replays one prompt at a time after waking
// from sleep or restarting; suppression is the caller's concern since it
// applies at prompt time, not to the grid itself.
func MissedBetween(lastCheck, now time.Time, cfg Config) []time.Time {
	var missed []time.Time
	if !now.After(lastCheck) {
		return missed
	}

	t := lastCheck
	for i := 0; i < maxBoundaries; i++ {
		next, ok := NextAligned(t, cfg)
		if !ok || !next.Before(now) {
			break
		}
		missed = append(missed, next)
		t = next
	}
	return missed
}
