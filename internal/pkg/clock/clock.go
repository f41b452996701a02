package clock

import "time"

// Timer is a pending call that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. Tests swap in a manual implementation.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
