package user_test

import (
	"context"
	"testing"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/storage/database/inmem"
	"github.com/musicaulas/backend/tests"
)

func TestUser_password(t *testing.T) {
	var usr user.User
	if err := usr.SetPassword("senha123"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if len(usr.PasswordHash) == 0 {
		t.Fatal("SetPassword() did not set a hash")
	}
	if err := usr.CheckPassword("senha123"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if err := usr.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestUser_roles(t *testing.T) {
	prof := user.User{Role: user.RoleProfessor}
	student := user.User{Role: user.RoleStudent}

	if !prof.IsProfessor() || prof.IsStudent() {
		t.Error("professor role flags are wrong")
	}
	if !student.IsStudent() || student.IsProfessor() {
		t.Error("student role flags are wrong")
	}
}

func TestNewUser_Validate(t *testing.T) {
	ctx := context.Background()
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	db := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)
	svc := user.NewService(repo, nil, &core.Config{AppName: "MusicaAulas"})
	testutil.CreateUser(t, repo, "Professor João", "joao@example.com", "senha123", user.RoleProfessor)

	tests := []struct {
		name    string
		data    user.NewUser
		wantErr bool
	}{
		{
			name: "valid",
			data: user.NewUser{
				Name: "Aluno Pedro", Email: "pedro@example.com",
				Password: "senha123", PasswordConfirm: "senha123", Role: user.RoleStudent,
			},
		},
		{
			name: "email is normalised",
			data: user.NewUser{
				Name: "Aluna Ana", Email: "  ANA@Example.com ",
				Password: "senha123", PasswordConfirm: "senha123", Role: user.RoleStudent,
			},
		},
		{
			name: "duplicate email",
			data: user.NewUser{
				Name: "Imposter", Email: "joao@example.com",
				Password: "senha123", PasswordConfirm: "senha123", Role: user.RoleProfessor,
			},
			wantErr: true,
		},
		{
			name: "duplicate email differing only in case",
			data: user.NewUser{
				Name: "Imposter", Email: "Joao@Example.COM",
				Password: "senha123", PasswordConfirm: "senha123", Role: user.RoleProfessor,
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			data: user.NewUser{
				Name: "Admin", Email: "admin@example.com",
				Password: "senha123", PasswordConfirm: "senha123", Role: "admin",
			},
			wantErr: true,
		},
		{
			name: "password confirm mismatch",
			data: user.NewUser{
				Name: "Aluno Pedro", Email: "pedro2@example.com",
				Password: "senha123", PasswordConfirm: "senha124", Role: user.RoleStudent,
			},
			wantErr: true,
		},
		{
			name:    "missing everything",
			data:    user.NewUser{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(ctx, validate, svc)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}

	if got := testutil.CreateUser(t, repo, "X", "x@example.com", "", user.RoleStudent); got.ID == "" {
		t.Error("repository did not assign an ID")
	}
}
