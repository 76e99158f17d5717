// Package auth derives the viewer's authentication state from the
// embedding environment and token presence, and owns the session
// lifecycle (init at login, full reset at logout).
package auth

// Status is one of exactly four mutually exclusive authentication
// states. Classification is total over the 2x2 input space.
type Status string

const (
	// StatusAuthenticatedInHost: inside the mini-program host with a
	// token. The host auto-supplies identity, so "raise team" entry
	// points skip manual login and go straight to "my team".
	StatusAuthenticatedInHost Status = "AUTHENTICATED_IN_HOST"
	// StatusInHostNoToken: inside the host but the host has not handed
	// over a token yet.
	StatusInHostNoToken Status = "IN_HOST_NO_TOKEN"
	// StatusAuthenticated: plain browser with a token.
	StatusAuthenticated Status = "AUTHENTICATED"
	// StatusNoTokenNotInHost: plain browser, no token. Identity-gated
	// entry points redirect to the login flow.
	StatusNoTokenNotInHost Status = "NO_TOKEN_NOT_IN_HOST"
)

// Classify maps environment and token presence to a Status.
func Classify(inHost, hasToken bool) Status {
	if inHost {
		if hasToken {
			return StatusAuthenticatedInHost
		}
		return StatusInHostNoToken
	}
	if hasToken {
		return StatusAuthenticated
	}
	return StatusNoTokenNotInHost
}

// Callbacks associates a reaction with each status for routing guards.
type Callbacks map[Status]func()

// Dispatch runs the callback registered for s, then the fallback, and
// returns s. The fallback runs in every state, even when a callback
// matched: it is the "in all cases" hook pages use for work shared by
// every navigation target, not a switch default.
func Dispatch(s Status, callbacks Callbacks, fallback func()) Status {
	if cb, ok := callbacks[s]; ok && cb != nil {
		cb()
	}
	if fallback != nil {
		fallback()
	}
	return s
}

// RequiresLogin reports whether an identity-gated entry point must
// redirect to the login flow.
func RequiresLogin(s Status) bool {
	return s == StatusNoTokenNotInHost
}

// SkipsManualLogin reports whether the raise-team entry point should
// redirect straight to "my team".
func SkipsManualLogin(s Status) bool {
	return s == StatusAuthenticatedInHost
}
