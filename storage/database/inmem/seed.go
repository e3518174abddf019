package inmemdb

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
)

// Seed loads the initial user directory and lesson catalog into an empty DB.
// A non-empty directory is left untouched.
func Seed(ctx context.Context, db *DB) error {
	usrRepo := NewUserRepository(db)
	vidRepo := NewVideoRepository(db)

	users, err := usrRepo.QueryAllUsers(ctx)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if len(users) > 0 {
		return nil
	}

	now := time.Now().UTC()
	joao := user.User{Name: "Professor João", Email: "joao@example.com", Role: user.RoleProfessor, CreatedAt: now}
	maria := user.User{Name: "Aluno Maria", Email: "maria@example.com", Role: user.RoleStudent, CreatedAt: now}

	for _, usr := range []*user.User{&joao, &maria} {
		if err := usr.SetPassword("senha123"); err != nil {
			return errors.Wrap(err, "hashing seed password")
		}
	}
	if joao, err = usrRepo.CreateUser(ctx, joao); err != nil {
		return errors.Wrap(err, "seeding professor")
	}
	if _, err = usrRepo.CreateUser(ctx, maria); err != nil {
		return errors.Wrap(err, "seeding student")
	}

	vids := []video.Video{
		{
			Title:       "Introdução ao Violão",
			Description: "Aula básica para iniciantes em violão. Aprenda as primeiras notas e acordes.",
			VideoURL:    "https://player.vimeo.com/video/76979871",
			CreatedAt:   time.Date(2023, time.May, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Técnicas de Dedilhado",
			Description: "Aprenda técnicas avançadas de dedilhado para violão clássico.",
			VideoURL:    "https://player.vimeo.com/video/90509568",
			CreatedAt:   time.Date(2023, time.May, 16, 14, 30, 0, 0, time.UTC),
		},
		{
			Title:       "Teoria Musical Básica",
			Description: "Fundamentos de teoria musical essenciais para qualquer músico.",
			VideoURL:    "https://player.vimeo.com/video/163153865",
			CreatedAt:   time.Date(2023, time.May, 18, 9, 45, 0, 0, time.UTC),
		},
	}
	for _, vid := range vids {
		vid.OwnerID = joao.ID
		vid.OwnerName = joao.Name
		if _, err := vidRepo.CreateVideo(ctx, vid); err != nil {
			return errors.Wrapf(err, "seeding video %q", vid.Title)
		}
	}
	return nil
}
