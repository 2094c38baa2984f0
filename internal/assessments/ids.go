package assessments

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues decimal millisecond timestamps as result ids. Ids from one
// generator strictly increase even when two submissions land in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	Now  func() time.Time
}

// NewIDGenerator constructs an IDGenerator on the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{Now: time.Now}
}

// Next returns the next id and the instant it was taken at.
func (g *IDGenerator) Next() (string, time.Time) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	t := now()
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := t.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10), t
}
