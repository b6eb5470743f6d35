package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh opaque identifier for a project or an item.
func NewID() string {
	return uuid.New().String()
}

// Clock yields the current time in epoch milliseconds.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}

// NextStamp returns a modification stamp strictly greater than prev,
// taking the clock reading when it is already ahead.
func NextStamp(clock Clock, prev int64) int64 {
	now := clock()
	if now <= prev {
		return prev + 1
	}
	return now
}
