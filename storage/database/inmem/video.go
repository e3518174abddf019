package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/musicaulas/backend/core/video"
)

type videoRepository struct {
	db *videoTable
}

func NewVideoRepository(db *DB) video.Repository {
	return &videoRepository{db: db.video}
}

func (repo *videoRepository) query(ownerID string) []video.Video {
	vids := make([]video.Video, 0, len(repo.db.table))
	for _, vid := range repo.db.table {
		if ownerID != "" && vid.OwnerID != ownerID {
			continue
		}
		vids = append(vids, *vid)
	}
	sort.Slice(vids, func(i, j int) bool {
		if vids[i].CreatedAt.Equal(vids[j].CreatedAt) {
			return vids[i].ID < vids[j].ID
		}
		return vids[i].CreatedAt.Before(vids[j].CreatedAt)
	})
	return vids
}

func (repo *videoRepository) CreateVideo(_ context.Context, vid video.Video) (video.Video, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if vid.ID == "" {
		vid.ID = uuid.NewString()
	}
	repo.db.table[vid.ID] = &vid
	return vid, nil
}

func (repo *videoRepository) QueryAllVideos(_ context.Context) ([]video.Video, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(""), nil
}

func (repo *videoRepository) QueryVideosByOwner(_ context.Context, ownerID string) ([]video.Video, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(ownerID), nil
}

func (repo *videoRepository) GetVideoByID(_ context.Context, id string) (video.Video, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if vid, ok := repo.db.table[id]; ok {
		return *vid, nil
	}
	return video.Video{}, video.ErrNotFound
}

func (repo *videoRepository) UpdateVideo(_ context.Context, vid video.Video) (video.Video, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[vid.ID]; !ok {
		return video.Video{}, video.ErrNotFound
	}
	repo.db.table[vid.ID] = &vid
	return vid, nil
}

func (repo *videoRepository) DeleteVideo(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return video.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
