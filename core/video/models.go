package video

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/musicaulas/backend/core"
)

type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"` // display-name snapshot taken at creation, not re-synced
	CreatedAt   time.Time `json:"created_at"`           // UTC
}

// NewVideo contains information needed to publish a new Video.
// Ownership is never supplied by the caller; it comes from the session.
type NewVideo struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"required,url"`
}

func (nv *NewVideo) Validate(validate *validator.Validate) error {
	nv.Title = core.CleanString(nv.Title)
	nv.Description = core.CleanString(nv.Description)
	nv.VideoURL = core.CleanString(nv.VideoURL)
	return validate.Struct(nv)
}

// UpdateVideo defines what information may be provided to modify an existing
// Video. An owner field supplied on the wire is accepted but never honored;
// updates always re-pin ownership to the acting professor.
type UpdateVideo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	OwnerID     string `json:"owner_id"`
}

func (uv *UpdateVideo) Validate(origVid Video, validate *validator.Validate) error {
	title := core.CleanString(uv.Title)
	if title != "" {
		uv.Title = title
	} else {
		uv.Title = origVid.Title
	}

	desc := core.CleanString(uv.Description)
	if desc != "" {
		uv.Description = desc
	} else {
		uv.Description = origVid.Description
	}

	vurl := core.CleanString(uv.VideoURL)
	if vurl != "" {
		uv.VideoURL = vurl
	} else {
		uv.VideoURL = origVid.VideoURL
	}

	return validate.Struct(uv)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match does a case-insensitive substring match on Video.Title and
// Video.Description. An empty filter matches everything.
func (qf QueryFilter) Match(vid Video) bool {
	if qf.Search == "" {
		return true
	}
	search := strings.ToLower(qf.Search)
	return strings.Contains(strings.ToLower(vid.Title), search) ||
		strings.Contains(strings.ToLower(vid.Description), search)
}
