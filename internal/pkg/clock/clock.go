package clock

import "time"

// Clock abstracts time.Now so lateness, overtime and sweep boundaries are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock, normalized to UTC.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// At returns a Fixed clock at t.
func At(t time.Time) Fixed {
	return Fixed{Instant: t}
}
