package service

import (
	"context"
	"fmt"

	"github.com/kunena/forumadmin/internal/avatar/model"
)

// Registered back-end names.
const (
	BackendComprofiler = "comprofiler"
	BackendNone        = "none"
)

// Provider is one avatar back-end. The forum picks a Provider by name and
// calls it for every avatar it renders.
type Provider interface {
	Name() string
	// Load hints that the given users are about to be rendered. It is
	// best-effort and never fails.
	Load(ctx context.Context, userIDs []int64)
	// EditURL is where users change their avatar.
	EditURL(ctx context.Context) (string, error)
	// URL never fails; missing data resolves to a fallback image.
	URL(ctx context.Context, user model.User, width, height int) string
}

// ProfileClient is the part of the profile service the comprofiler provider uses.
type ProfileClient interface {
	Preload(ctx context.Context, userIDs []int64) ([]model.Profile, error)
	EditURL(ctx context.Context) (string, error)
	Profile(ctx context.Context, userID int64) (*model.Profile, bool, error)
	Field(ctx context.Context, userID int64, field string, opts model.FieldOptions) (string, error)
}

// Options configure a provider.
type Options struct {
	TemplatePath      string
	ThumbnailMaxWidth int
	Client            ProfileClient
	Cache             ProfileCache
}

type factory func(opts Options) Provider

var providers = map[string]factory{
	BackendComprofiler: func(opts Options) Provider { return NewComprofilerProvider(opts) },
	BackendNone:        func(opts Options) Provider { return NewStaticProvider(opts) },
}

// NewProvider returns the provider registered under backend.
func NewProvider(backend string, opts Options) (Provider, error) {
	f, ok := providers[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownBackend, backend)
	}
	if opts.ThumbnailMaxWidth <= 0 {
		opts.ThumbnailMaxWidth = model.DefaultThumbnailMaxWidth
	}
	if opts.Cache == nil {
		opts.Cache = NoopCache{}
	}
	return f(opts), nil
}

// fallbackURL picks the template's placeholder image for the requested width.
func fallbackURL(templatePath string, width, thumbnailMaxWidth int) string {
	if width <= thumbnailMaxWidth {
		return templatePath + model.FallbackThumbnail
	}
	return templatePath + model.FallbackFull
}
