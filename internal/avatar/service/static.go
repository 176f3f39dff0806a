package service

import (
	"context"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/kunena/forumadmin/internal/metrics"
)

// StaticProvider only serves the template's placeholder images.
type StaticProvider struct {
	templatePath      string
	thumbnailMaxWidth int
}

func NewStaticProvider(opts Options) *StaticProvider {
	if opts.ThumbnailMaxWidth <= 0 {
		opts.ThumbnailMaxWidth = model.DefaultThumbnailMaxWidth
	}
	return &StaticProvider{templatePath: opts.TemplatePath, thumbnailMaxWidth: opts.ThumbnailMaxWidth}
}

func (p *StaticProvider) Name() string { return BackendNone }

func (p *StaticProvider) Load(ctx context.Context, userIDs []int64) {}

func (p *StaticProvider) EditURL(ctx context.Context) (string, error) {
	return "", model.ErrProfileServiceUnavailable
}

func (p *StaticProvider) URL(ctx context.Context, user model.User, width, height int) string {
	metrics.AvatarResolutions.WithLabelValues(BackendNone, "fallback").Inc()
	return fallbackURL(p.templatePath, width, p.thumbnailMaxWidth)
}
