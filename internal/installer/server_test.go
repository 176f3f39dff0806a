package installer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kunena/forumadmin/internal/config"
	"github.com/kunena/forumadmin/internal/installer/model"
	"github.com/kunena/forumadmin/internal/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallerServer_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", DBName: ":memory:", Prefix: "jos_"},
		Release:  config.ReleaseConfig{Version: "6.0.0", Date: "2022-01-01", Name: "Git Repository"},
	}
	srv, err := NewInstallerServer(cfg, language.Default())
	require.NoError(t, err)
	defer srv.Close()

	_, err = srv.db.GetDB().Exec(`CREATE TABLE jos_kunena_version (id INTEGER PRIMARY KEY, version TEXT, state TEXT)`)
	require.NoError(t, err)
	_, err = srv.db.GetDB().Exec(`INSERT INTO jos_kunena_version (id, version, state) VALUES (1, '6.0.0', '')`)
	require.NoError(t, err)

	needsCheck, err := srv.Service().CheckVersion(context.Background())
	require.NoError(t, err)
	assert.True(t, needsCheck)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, srv.UseApi(router))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/version/check", nil))
	assert.JSONEq(t, `{"needsCheck":true}`, w.Body.String())
}

func TestInstallerServer_NoDatabase(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "no-such-driver"},
		Release:  config.ReleaseConfig{Version: "6.0.0"},
	}
	srv, err := NewInstallerServer(cfg, language.Default())
	require.NoError(t, err)
	defer srv.Close()

	record, err := srv.Service().DBVersion(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, record.HasVersion())
}

func TestInstallerServer_RequiresLanguage(t *testing.T) {
	_, err := NewInstallerServer(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestInstallerServer_UnreachableDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-yet")
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", DBName: filepath.Join(dir, "forum.db"), Prefix: "jos_"},
		Release:  config.ReleaseConfig{Version: "6.0.0"},
	}
	srv, err := NewInstallerServer(cfg, language.Default())
	require.NoError(t, err)
	defer srv.Close()
	ctx := context.Background()

	status, err := srv.Service().Status(ctx)
	require.Error(t, err)
	assert.Nil(t, status)

	_, err = srv.Service().CheckVersion(ctx)
	assert.Error(t, err)

	// the directory appearing stands in for the database coming back
	require.NoError(t, os.MkdirAll(dir, 0o755))
	status, err = srv.Service().Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ActionInstall, status.Action)
}
