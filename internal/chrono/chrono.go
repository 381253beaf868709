package chrono

import (
	"time"
	_ "time/tzdata"
)

var kst *time.Location

func init() {
	var err error
	kst, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// KST returns a [*time.Location] for Asia/Seoul, the zone stations report in.
func KST() *time.Location {
	return kst
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in Asia/Seoul.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now().In(kst)
}

// FixedTime always returns the same instant.
type FixedTime time.Time

func (f FixedTime) Now() time.Time {
	return time.Time(f).In(kst)
}
