package authz_test

import (
	"testing"

	"github.com/musicaulas/backend/core/authz"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
)

var (
	prof    = user.User{ID: "p1", Name: "Professor João", Role: user.RoleProfessor}
	student = user.User{ID: "s1", Name: "Aluno Maria", Role: user.RoleStudent}

	loadingSess   = session.Session{State: session.StateLoading}
	anonSess      = session.Session{State: session.StateAnonymous}
	profSess      = session.Session{User: &prof, State: session.StateAuthenticated}
	studentSess   = session.Session{User: &student, State: session.StateAuthenticated}
	brokenSess    = session.Session{State: session.StateAuthenticated} // no user attached
	allProfessors = []string{user.RoleProfessor}
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		want bool
	}{
		{"loading", loadingSess, false},
		{"anonymous", anonSess, false},
		{"authenticated without user", brokenSess, false},
		{"student", studentSess, true},
		{"professor", profSess, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanView(tt.sess); got != tt.want {
				t.Errorf("CanView() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
		want bool
	}{
		{"anonymous", anonSess, false},
		{"loading", loadingSess, false},
		{"student", studentSess, false},
		{"professor", profSess, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanCreate(tt.sess); got != tt.want {
				t.Errorf("CanCreate() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name    string
		sess    session.Session
		ownerID string
		want    bool
	}{
		{"professor owns the video", profSess, prof.ID, true},
		{"professor does not own the video", profSess, "p2", false},
		{"student never mutates", studentSess, student.ID, false},
		{"anonymous", anonSess, prof.ID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanMutate(tt.sess, tt.ownerID); got != tt.want {
				t.Errorf("CanMutate() = %v; want %v", got, tt.want)
			}
			// CanListOwn is by definition the same decision
			if got := authz.CanListOwn(tt.sess, tt.ownerID); got != tt.want {
				t.Errorf("CanListOwn() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCheckRoute(t *testing.T) {
	tests := []struct {
		name         string
		sess         session.Session
		allowedRoles []string
		want         authz.Decision
	}{
		{"anonymous is sent to login", anonSess, nil, authz.RedirectLogin},
		{"loading is not authenticated", loadingSess, nil, authz.RedirectLogin},
		{"no role restriction admits students", studentSess, nil, authz.Allow},
		{"no role restriction admits professors", profSess, nil, authz.Allow},
		{"professor route admits professors", profSess, allProfessors, authz.Allow},
		{"professor route bounces students home", studentSess, allProfessors, authz.RedirectHome},
		{"anonymous on restricted route still goes to login", anonSess, allProfessors, authz.RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CheckRoute(tt.sess, tt.allowedRoles); got != tt.want {
				t.Errorf("CheckRoute() = %v; want %v", got, tt.want)
			}
		})
	}
}
