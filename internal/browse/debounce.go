package browse

import "time"

// DefaultSearchDelay is the quiet period before a search is issued.
const DefaultSearchDelay = 350 * time.Millisecond

// Debouncer tracks the latest keystroke so only the final keyword of a
// burst triggers a search. Each Bump returns a tag; the caller schedules a
// timer carrying the tag and calls Fire when it expires. Only the timer for
// the most recent Bump fires, and it fires once.
type Debouncer struct {
	delay   time.Duration
	tag     uint64
	pending string
	armed   bool
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Bump records keyword as the latest input and restarts the quiet period.
func (d *Debouncer) Bump(keyword string) uint64 {
	d.tag++
	d.pending = keyword
	d.armed = true
	return d.tag
}

// Fire reports the keyword to search for if tag belongs to the latest Bump
// and has not fired yet.
func (d *Debouncer) Fire(tag uint64) (string, bool) {
	if !d.armed || tag != d.tag {
		return "", false
	}
	d.armed = false
	return d.pending, true
}

// Cancel drops any pending search.
func (d *Debouncer) Cancel() {
	d.tag++
	d.armed = false
}
