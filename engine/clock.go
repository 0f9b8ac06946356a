package engine

import "time"

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	// Stop reports whether it prevented the callback from running
	Stop() bool
}

// Clock schedules the pacing delays between the steps of a turn
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock runs callbacks on time.AfterFunc goroutines
func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Timings are the delays a session waits so players can watch what happens
type Timings struct {
	// Spin is how long the dreidel spins before it shows a symbol
	Spin time.Duration
	// Settle is how long the symbol shows before moves are worked out
	Settle time.Duration
	// NoMoveDigital and NoMoveManual are how long a "nowhere to move"
	// message stays up before the next player's turn
	NoMoveDigital time.Duration
	NoMoveManual  time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Spin:          2000 * time.Millisecond,
		Settle:        1800 * time.Millisecond,
		NoMoveDigital: 3000 * time.Millisecond,
		NoMoveManual:  2500 * time.Millisecond,
	}
}
