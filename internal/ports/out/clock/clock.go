package clock

import "time"

// Clock provides time to the application. Registration freezes an age/fee
// snapshot at the current instant, so injecting the clock keeps that
// derivation deterministic in tests.
type Clock interface {
	Now() time.Time
}
