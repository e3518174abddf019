package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core/authz"
	"github.com/musicaulas/backend/core/video"
)

// VideoResponse decorates a Video with the playback kind the player layer
// needs to mount it.
type VideoResponse struct {
	video.Video
	Playback video.SourceKind `json:"playback"`
}

func newVideoResponse(vid video.Video) VideoResponse {
	return VideoResponse{Video: vid, Playback: video.ClassifySource(vid.VideoURL)}
}

func (s *server) queryVideos(ctx echo.Context) error {
	filter := new(video.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	sess := s.opts.SessionStore.Current()
	vids, err := s.opts.VideoSvc.Search(ctx.Request().Context(), sess, *filter)
	if err != nil {
		return errors.Wrap(err, "querying videos")
	}
	if vids == nil {
		vids = []video.Video{}
	}
	return ctx.JSON(http.StatusOK, vids)
}

func (s *server) retrieveVideo(ctx echo.Context) error {
	vid, err := s.opts.VideoSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding video by ID")
	}
	return ctx.JSON(http.StatusOK, newVideoResponse(vid))
}

func (s *server) queryOwnVideos(ctx echo.Context) error {
	sess := s.opts.SessionStore.Current()
	vids, err := s.opts.VideoSvc.ListForRole(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "querying own videos")
	}
	if vids == nil {
		vids = []video.Video{}
	}
	return ctx.JSON(http.StatusOK, vids)
}

func (s *server) createVideo(ctx echo.Context) error {
	var data video.NewVideo
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVideo")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	sess := s.opts.SessionStore.Current()
	vid, err := s.opts.VideoSvc.Add(ctx.Request().Context(), data, sess)
	if err != nil {
		if errors.Cause(err) == video.ErrPermissionDenied {
			return errHttpForbidden
		}
		return errors.Wrap(err, "creating video")
	}
	return ctx.JSON(http.StatusCreated, vid)
}

func (s *server) retrieveOwnVideo(ctx echo.Context) error {
	sess := s.opts.SessionStore.Current()
	vid, err := s.opts.VideoSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding video by ID")
	}
	// the edit form only serves owned videos
	if !authz.CanMutate(sess, vid.OwnerID) {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, vid)
}

func (s *server) updateVideo(ctx echo.Context) error {
	var data video.UpdateVideo
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateVideo")
	}

	reqCtx := ctx.Request().Context()
	orig, err := s.opts.VideoSvc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == video.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding video by ID")
	}
	// a foreign video must read as missing before the patch is even looked at
	sess := s.opts.SessionStore.Current()
	if !authz.CanMutate(sess, orig.OwnerID) {
		return errHttpNotFound
	}
	if err := data.Validate(orig, s.opts.Validate); err != nil {
		return err
	}

	vid, err := s.opts.VideoSvc.Update(reqCtx, orig.ID, data, sess)
	if err != nil {
		switch errors.Cause(err) {
		case video.ErrNotFound:
			return errHttpNotFound
		case video.ErrPermissionDenied:
			return errHttpForbidden
		}
		return errors.Wrap(err, "updating video")
	}
	return ctx.JSON(http.StatusOK, vid)
}

func (s *server) deleteVideo(ctx echo.Context) error {
	sess := s.opts.SessionStore.Current()
	if err := s.opts.VideoSvc.Delete(ctx.Request().Context(), ctx.Param("id"), sess); err != nil {
		switch errors.Cause(err) {
		case video.ErrNotFound:
			return errHttpNotFound
		case video.ErrPermissionDenied:
			return errHttpForbidden
		}
		return errors.Wrap(err, "deleting video")
	}
	return ctx.NoContent(http.StatusNoContent)
}
