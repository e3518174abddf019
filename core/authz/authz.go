// Package authz holds the pure access-control decisions governing the
// video catalog and the route surface. No function here has side effects.
package authz

import "github.com/musicaulas/backend/core/session"

// Decision is the outcome of a route-level access check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

// CanView permits any authenticated user, role-independent.
func CanView(sess session.Session) bool {
	return sess.IsAuthenticated()
}

// CanCreate permits authenticated professors only.
func CanCreate(sess session.Session) bool {
	return sess.IsAuthenticated() && sess.User.IsProfessor()
}

// CanListOwn reports whether the video identified by ownerID belongs in
// the session user's "my videos" view.
func CanListOwn(sess session.Session, ownerID string) bool {
	return CanCreate(sess) && sess.User.ID == ownerID
}

// CanMutate governs edit/delete; the condition is identical to CanListOwn.
func CanMutate(sess session.Session, ownerID string) bool {
	return CanListOwn(sess, ownerID)
}

// CheckRoute evaluates a restricted route with an optional allowed-roles set.
// An empty set admits any authenticated user.
func CheckRoute(sess session.Session, allowedRoles []string) Decision {
	if !sess.IsAuthenticated() {
		return RedirectLogin
	}
	if len(allowedRoles) == 0 {
		return Allow
	}
	for _, role := range allowedRoles {
		if sess.User.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
