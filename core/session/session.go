package session

import "github.com/musicaulas/backend/core/user"

// State is the lifecycle phase of the running instance's session:
// loading -> authenticated | anonymous.
type State string

const (
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Session holds the current authenticated identity, or its absence.
type Session struct {
	User  *user.User `json:"user"`
	State State      `json:"state"`
}

// IsLoading reports whether the initial restore from durable storage
// has not completed yet. Role-gated content must not be served while loading.
func (s Session) IsLoading() bool {
	return s.State == StateLoading
}

func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Role returns the authenticated user's role, or "".
func (s Session) Role() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}
