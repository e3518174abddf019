package inmemdb

import (
	"sync"

	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
)

type (
	DB struct {
		user  *userTable
		video *videoTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	videoTable struct {
		mutex sync.RWMutex
		table map[string]*video.Video
	}
)

func Open() *DB {
	return &DB{
		user:  &userTable{table: make(map[string]*user.User)},
		video: &videoTable{table: make(map[string]*video.Video)},
	}
}
