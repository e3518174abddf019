package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateVideo(
	t *testing.T,
	repo video.Repository,
	title, description, videoURL string,
	owner user.User,
	createdAt ...time.Time,
) video.Video {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	vid, err := repo.CreateVideo(context.Background(), video.Video{
		Title:       title,
		Description: description,
		VideoURL:    videoURL,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreateVideo() failed: %v", err)
	}
	return vid
}
