// Package guard gates the authenticated command set behind session state.
package guard

// Session is the read-only slice of the session store the guard consults.
type Session interface {
	Loading() bool
	IsAuthenticated() bool
}

// State is the guard's decision for a single evaluation.
type State int

const (
	// Pending: the session restore has not finished; render a neutral
	// waiting state and make no navigation decision.
	Pending State = iota
	// Allowed: authenticated; the requested view may render.
	Allowed
	// Denied: not authenticated; redirect to the login entry point,
	// discarding the requested view.
	Denied
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Guard re-derives its state from the session on every evaluation. Nothing
// is cached: a logout immediately flips the next evaluation to Denied.
type Guard struct {
	session Session
}

func New(session Session) *Guard {
	return &Guard{session: session}
}

// Evaluate returns the decision for one navigation into the guarded area.
func (g *Guard) Evaluate() State {
	if g.session.Loading() {
		return Pending
	}
	if g.session.IsAuthenticated() {
		return Allowed
	}
	return Denied
}
