package avatar

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/avatar/api"
	"github.com/kunena/forumadmin/internal/avatar/client"
	"github.com/kunena/forumadmin/internal/avatar/service"
	"github.com/kunena/forumadmin/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AvatarServer wires the configured avatar provider to the HTTP API.
type AvatarServer struct {
	config   *config.Config
	redis    *redis.Client
	provider service.Provider
	api      *api.Api
}

// NewRedisClientFromConfig constructs a redis client from app config, or nil
// when no address is configured.
func NewRedisClientFromConfig(c *config.RedisConfig) *redis.Client {
	if c == nil || c.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
}

func NewAvatarServer(cfg *config.Config) (*AvatarServer, error) {
	// only the comprofiler back-end fetches profiles worth caching
	var (
		rdb           *redis.Client
		cache         service.ProfileCache
		profileClient service.ProfileClient
	)
	if cfg.Avatar.Backend == service.BackendComprofiler {
		ttl := parseDuration(cfg.Redis.TTL, 10*time.Minute)
		rdb = NewRedisClientFromConfig(&cfg.Redis)
		if rdb != nil {
			cache = service.NewRedisCache(rdb, ttl)
		} else {
			cache = service.NewMemoryCache(ttl)
		}

		c, err := client.NewComprofilerClient(cfg.Comprofiler.BaseURL, parseDuration(cfg.Comprofiler.Timeout, 5*time.Second), cfg.Comprofiler.Token)
		if err != nil {
			log.Error().Err(err).Msg("comprofiler client init failed; avatars will use fallback images")
		} else {
			profileClient = c
		}
	}

	provider, err := service.NewProvider(cfg.Avatar.Backend, service.Options{
		TemplatePath:      cfg.Avatar.TemplatePath,
		ThumbnailMaxWidth: cfg.Avatar.ThumbnailMaxWidth,
		Client:            profileClient,
		Cache:             cache,
	})
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return nil, fmt.Errorf("failed to create avatar provider: %w", err)
	}

	log.Info().
		Str("backend", provider.Name()).
		Bool("redis", rdb != nil).
		Str("comprofiler", cfg.Comprofiler.BaseURL).
		Msg("Avatar server initialized")

	return &AvatarServer{
		config:   cfg,
		redis:    rdb,
		provider: provider,
	}, nil
}

// Provider exposes the selected avatar provider.
func (s *AvatarServer) Provider() service.Provider { return s.provider }

func (s *AvatarServer) UseApi(router *gin.Engine) error {
	var err error
	s.api, err = api.NewApi(s.provider, s.config.Avatar.DefaultSize, router)
	if err != nil {
		return fmt.Errorf("failed to initialize avatar API: %w", err)
	}
	return nil
}

func (s *AvatarServer) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

func parseDuration(s string, d time.Duration) time.Duration {
	if s == "" {
		return d
	}
	if v, err := time.ParseDuration(s); err == nil {
		return v
	}
	return d
}
