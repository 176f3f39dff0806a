package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/avatar"
	"github.com/kunena/forumadmin/internal/config"
	"github.com/kunena/forumadmin/internal/installer"
	"github.com/kunena/forumadmin/internal/language"
	"github.com/kunena/forumadmin/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("f", "", "Path to configuration file (.json, .yml or .yaml)")
	showVersion := flag.Bool("version", false, "Print build information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Print("forumadmin"))
		os.Exit(0)
	}

	// load config first
	log.Info().Str("build", version.Info()).Str("build_context", version.BuildContext()).Msg("Starting forum admin server")
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// configure log level from config
	switch strings.ToLower(cfg.Logging.Level) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	lang, err := language.Load(cfg.Language.Tag, cfg.Language.File)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language")
	}

	installerSrv, err := installer.NewInstallerServer(cfg, lang)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create installer server")
	}
	defer func() {
		installerSrv.Close()
	}()

	avatarSrv, err := avatar.NewAvatarServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create avatar server")
	}
	defer func() {
		avatarSrv.Close()
	}()

	if warning := installerSrv.Service().VersionWarning(""); warning != "" {
		log.Warn().Str("version", cfg.Release.Version).Msg(warning)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID)
	router.Use(middleware.Metrics)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := installerSrv.UseApi(router); err != nil {
		log.Fatal().Err(err).Msg("bind installer api failed.")
	}
	if err := avatarSrv.UseApi(router); err != nil {
		log.Fatal().Err(err).Msg("bind avatar api failed.")
	}

	log.Info().Msgf("Starting server on %s", cfg.Server.BindAddr)
	if err := router.Run(cfg.Server.BindAddr); err != nil {
		log.Fatal().Err(err).Msg("start forum admin server failed.")
	}
	log.Info().Msg("forum admin server exit...")
}
