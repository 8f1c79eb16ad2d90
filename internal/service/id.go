package service

import (
	"strconv"
	"time"
)

// newID returns a millisecond-timestamp identifier. Monotonic enough for
// this system; two creations inside the same millisecond for the same
// partition could collide, which is an accepted limitation.
func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
