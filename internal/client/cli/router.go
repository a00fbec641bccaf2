package cli

import "sync"

// Router is the console's notion of "where the operator is". The HTTP
// pipeline calls Navigate on a forced logout; the REPL picks the pending
// route up before its next prompt.
type Router struct {
	mu      sync.Mutex
	current string
	pending bool
}

func NewRouter() *Router {
	return &Router{current: "/"}
}

// Navigate switches to route and marks it pending for the REPL.
func (r *Router) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
	r.pending = true
}

// Set moves to route without asking the REPL to act on it.
func (r *Router) Set(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
	r.pending = false
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Pending returns the route navigated to since the last call, if any.
func (r *Router) Pending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.pending {
		return "", false
	}
	r.pending = false
	return r.current, true
}
