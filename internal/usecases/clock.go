package usecases

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

// recordTime is the creation stamp stored on records, whole seconds in UTC
func recordTime(c Clock) time.Time {
	return c.Now().UTC().Truncate(time.Second)
}
