package models

import (
	"fmt"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID mints a record id of the form PREFIX_<unix millis>, e.g. FB_1735689600123.
// Two mints inside the same millisecond bump the clock value so ids stay unique
// within this process.
func NewID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return fmt.Sprintf("%s_%d", prefix, now)
}
