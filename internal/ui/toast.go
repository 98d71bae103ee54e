package ui

import "time"

// toastDuration is how long a notification stays on screen.
const toastDuration = 3 * time.Second

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toast is the single notification slot. A newer toast replaces the
// current one and only the latest expiry hides it.
type toast struct {
	seq     int
	message string
	kind    toastKind
	visible bool
}

func (t *toast) show(message string, kind toastKind) int {
	t.seq++
	t.message = message
	t.kind = kind
	t.visible = true
	return t.seq
}

func (t *toast) expire(seq int) {
	if seq == t.seq {
		t.visible = false
	}
}
