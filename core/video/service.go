package video

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core/authz"
	"github.com/musicaulas/backend/core/session"
)

var (
	// errors

	// ErrNotFound covers both a missing target and a mutation target owned
	// by another professor; the two cases are indistinguishable to callers.
	ErrNotFound = errors.New("video not found")

	ErrPermissionDenied = errors.New("permission denied")
)

type (
	Repository interface {
		CreateVideo(ctx context.Context, vid Video) (Video, error)
		QueryAllVideos(ctx context.Context) ([]Video, error)
		QueryVideosByOwner(ctx context.Context, ownerID string) ([]Video, error)
		GetVideoByID(ctx context.Context, id string) (Video, error)
		UpdateVideo(ctx context.Context, vid Video) (Video, error)
		DeleteVideo(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListForRole returns the catalog slice visible to the session:
// professors see only the videos they own, students see the full catalog,
// anyone else sees nothing.
func (svc *Service) ListForRole(ctx context.Context, sess session.Session) ([]Video, error) {
	switch {
	case !sess.IsAuthenticated():
		return []Video{}, nil
	case sess.User.IsProfessor():
		return svc.repo.QueryVideosByOwner(ctx, sess.User.ID)
	default:
		return svc.repo.QueryAllVideos(ctx)
	}
}

// Search applies the filter over the role-visible sequence.
func (svc *Service) Search(ctx context.Context, sess session.Session, filter QueryFilter) ([]Video, error) {
	vids, err := svc.ListForRole(ctx, sess)
	if err != nil || filter.IsEmpty() {
		return vids, err
	}
	matched := make([]Video, 0, len(vids))
	for _, vid := range vids {
		if filter.Match(vid) {
			matched = append(matched, vid)
		}
	}
	return matched, nil
}

// GetByID performs no authorization check; reads are gated by the caller's
// route guard.
func (svc *Service) GetByID(ctx context.Context, id string) (Video, error) {
	return svc.repo.GetVideoByID(ctx, id)
}

// Add publishes a new Video owned by the session's professor.
func (svc *Service) Add(ctx context.Context, nv NewVideo, sess session.Session) (Video, error) {
	if !authz.CanCreate(sess) {
		return Video{}, ErrPermissionDenied
	}
	vid := Video{
		Title:       nv.Title,
		Description: nv.Description,
		VideoURL:    nv.VideoURL,
		OwnerID:     sess.User.ID,
		OwnerName:   sess.User.Name,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateVideo(ctx, vid)
}

// Update merges the patch into an owned Video. Ownership is re-pinned to
// the acting professor regardless of the supplied patch.
func (svc *Service) Update(ctx context.Context, id string, uv UpdateVideo, sess session.Session) (Video, error) {
	if !authz.CanCreate(sess) {
		return Video{}, ErrPermissionDenied
	}
	vid, err := svc.repo.GetVideoByID(ctx, id)
	if err != nil {
		return Video{}, err
	}
	if !authz.CanMutate(sess, vid.OwnerID) {
		return Video{}, ErrNotFound
	}

	// only merge set fields
	if uv.Title != "" {
		vid.Title = uv.Title
	}
	if uv.Description != "" {
		vid.Description = uv.Description
	}
	if uv.VideoURL != "" {
		vid.VideoURL = uv.VideoURL
	}
	vid.OwnerID = sess.User.ID
	vid.OwnerName = sess.User.Name

	return svc.repo.UpdateVideo(ctx, vid)
}

// Delete removes an owned Video; the catalog is unchanged on failure.
func (svc *Service) Delete(ctx context.Context, id string, sess session.Session) error {
	if !authz.CanCreate(sess) {
		return ErrPermissionDenied
	}
	vid, err := svc.repo.GetVideoByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanMutate(sess, vid.OwnerID) {
		return ErrNotFound
	}
	return svc.repo.DeleteVideo(ctx, vid.ID)
}
