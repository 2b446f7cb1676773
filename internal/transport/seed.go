package transport

import "time"

// newSeed draws a fresh game seed from wall-clock time; once a room is
// started, every further random draw inside the reducer advances
// deterministically from this single value.
func newSeed() int64 {
	return time.Now().UnixNano()
}
