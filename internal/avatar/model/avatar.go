package model

import "errors"

// DefaultThumbnailMaxWidth is the widest request still served as a thumbnail.
const DefaultThumbnailMaxWidth = 144

// Fallback images, relative to the profile template path.
const (
	FallbackThumbnail = "images/avatar/tnnophoto_n.png"
	FallbackFull      = "images/avatar/nophoto_n.png"
)

// AvatarField is the profile field holding the avatar image.
const AvatarField = "avatar"

// User is the forum's view of a user. ID 0 is a guest.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

// Guest reports whether the user is anonymous.
func (u User) Guest() bool { return u.ID <= 0 }

// AvatarRequest asks for an avatar URL at a given size in pixels.
type AvatarRequest struct {
	UserID int64 `json:"userId"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

// Profile is a user record held by the external profile service.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// FieldOptions selects how the profile service renders a field.
type FieldOptions struct {
	Reason string `json:"reason,omitempty"` // e.g. "csv"
	Output string `json:"output,omitempty"` // e.g. "none"
	Format string `json:"format,omitempty"` // e.g. "list"
}

// ThumbnailField renders the avatar as a small image.
var ThumbnailField = FieldOptions{Reason: "csv"}

// FullField renders the avatar at full size.
var FullField = FieldOptions{Reason: "csv", Output: "none", Format: "list"}

// PreloadRequest is the body of POST /v1/avatars/preload.
type PreloadRequest struct {
	UserIDs []int64 `json:"userIds" binding:"required"`
}

// AvatarResponse is returned by the avatar API.
type AvatarResponse struct {
	UserID int64  `json:"userId"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var (
	// ErrProfileServiceUnavailable means no profile service is configured.
	ErrProfileServiceUnavailable = errors.New("profile service unavailable")
	// ErrUnknownBackend means avatar.backend names no registered provider.
	ErrUnknownBackend = errors.New("unknown avatar backend")
)
