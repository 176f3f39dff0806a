package service

import (
	"context"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/kunena/forumadmin/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ComprofilerProvider serves avatars from Community Builder profiles.
type ComprofilerProvider struct {
	client            ProfileClient
	cache             ProfileCache
	templatePath      string
	thumbnailMaxWidth int
}

func NewComprofilerProvider(opts Options) *ComprofilerProvider {
	if opts.Cache == nil {
		opts.Cache = NoopCache{}
	}
	if opts.ThumbnailMaxWidth <= 0 {
		opts.ThumbnailMaxWidth = model.DefaultThumbnailMaxWidth
	}
	return &ComprofilerProvider{
		client:            opts.Client,
		cache:             opts.Cache,
		templatePath:      opts.TemplatePath,
		thumbnailMaxWidth: opts.ThumbnailMaxWidth,
	}
}

func (p *ComprofilerProvider) Name() string { return BackendComprofiler }

func (p *ComprofilerProvider) Load(ctx context.Context, userIDs []int64) {
	if p.client == nil {
		return
	}
	ids := make([]int64, 0, len(userIDs))
	seen := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if _, ok := p.cache.Get(ctx, id); ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}

	profiles, err := p.client.Preload(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Int("users", len(ids)).Msg("comprofiler preload failed")
		metrics.AvatarPrefetches.WithLabelValues(BackendComprofiler, "error").Inc()
		return
	}
	if err := p.cache.Set(ctx, profiles...); err != nil {
		log.Warn().Err(err).Int("profiles", len(profiles)).Msg("failed to cache preloaded profiles")
	}
	metrics.AvatarPrefetches.WithLabelValues(BackendComprofiler, "ok").Inc()
	log.Debug().Int("requested", len(ids)).Int("loaded", len(profiles)).Msg("comprofiler profiles preloaded")
}

func (p *ComprofilerProvider) EditURL(ctx context.Context) (string, error) {
	if p.client == nil {
		return "", model.ErrProfileServiceUnavailable
	}
	return p.client.EditURL(ctx)
}

func (p *ComprofilerProvider) URL(ctx context.Context, user model.User, width, height int) string {
	profile, ok := p.profile(ctx, user)
	if !ok {
		metrics.AvatarResolutions.WithLabelValues(BackendComprofiler, "fallback").Inc()
		return fallbackURL(p.templatePath, width, p.thumbnailMaxWidth)
	}

	opts := model.FullField
	if width <= p.thumbnailMaxWidth {
		opts = model.ThumbnailField
	}
	value, err := p.client.Field(ctx, profile.ID, model.AvatarField, opts)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", profile.ID).Msg("failed to read avatar field")
		metrics.AvatarResolutions.WithLabelValues(BackendComprofiler, "fallback").Inc()
		return fallbackURL(p.templatePath, width, p.thumbnailMaxWidth)
	}
	metrics.AvatarResolutions.WithLabelValues(BackendComprofiler, "profile").Inc()
	return value
}

// profile resolves the external profile of user; ok is false for guests,
// unknown users and unreachable services.
func (p *ComprofilerProvider) profile(ctx context.Context, user model.User) (*model.Profile, bool) {
	if user.Guest() || p.client == nil {
		return nil, false
	}
	if cached, ok := p.cache.Get(ctx, user.ID); ok {
		return cached, true
	}

	profile, found, err := p.client.Profile(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("comprofiler profile lookup failed")
		return nil, false
	}
	if !found {
		log.Debug().Int64("user_id", user.ID).Msg("no comprofiler profile for user")
		return nil, false
	}
	if err := p.cache.Set(ctx, *profile); err != nil {
		log.Debug().Err(err).Int64("user_id", user.ID).Msg("failed to cache profile")
	}
	return profile, true
}
