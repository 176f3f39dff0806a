package installer

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/config"
	"github.com/kunena/forumadmin/internal/installer/api"
	"github.com/kunena/forumadmin/internal/installer/database"
	"github.com/kunena/forumadmin/internal/installer/service"
	"github.com/kunena/forumadmin/internal/language"
	"github.com/rs/zerolog/log"
)

// InstallerServer serves the installed-version admin endpoints.
type InstallerServer struct {
	config  *config.Config
	db      *database.Database
	service *service.VersionService
	api     *api.Api
}

// NewInstallerServer connects to the CMS database and builds the version
// service. Only a database that cannot be configured at all leaves the service
// without a store; an unreachable one is kept and lookups report its errors
// until it answers again.
func NewInstallerServer(cfg *config.Config, lang *language.Translator) (*InstallerServer, error) {
	if lang == nil {
		return nil, fmt.Errorf("installer server: language is required")
	}

	var store service.VersionStore
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("installer DB init failed; version lookups will use defaults")
	} else {
		store = db
		if err := db.Ping(); err != nil {
			log.Warn().Err(err).Str("driver", db.Driver()).Msg("installer DB not reachable yet; version lookups will fail until it is")
		}
	}

	server := &InstallerServer{
		config:  cfg,
		db:      db,
		service: service.NewVersionService(store, lang, cfg.Release),
	}

	log.Info().
		Str("version", cfg.Release.Version).
		Str("stability", string(server.service.Stability())).
		Msg("Installer server initialized")
	return server, nil
}

// Service exposes the version service.
func (s *InstallerServer) Service() *service.VersionService { return s.service }

func (s *InstallerServer) UseApi(router *gin.Engine) error {
	var err error
	s.api, err = api.NewApi(s.service, router)
	if err != nil {
		return fmt.Errorf("failed to initialize installer API: %w", err)
	}
	return nil
}

func (s *InstallerServer) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
