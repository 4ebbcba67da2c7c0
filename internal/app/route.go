package app

import (
	"github.com/Faultbox/melonview/internal/engine/input"
)

// Router claims events before the scene sees them.
type Router interface {
	Handle(e input.Event) bool
}

// route offers e to the overlay and dispatches it to the scene handlers unless
// the overlay consumed it. It reports whether e reached the dispatcher.
func route(r Router, d *input.Dispatcher, e input.Event) bool {
	if r != nil && r.Handle(e) {
		return false
	}
	d.Dispatch(e)
	return true
}
