package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kunena/forumadmin/internal/config"
	"github.com/kunena/forumadmin/internal/installer/model"
	"github.com/kunena/forumadmin/internal/metrics"
	"github.com/rs/zerolog/log"
)

// DefaultWarningKey is the message template used by VersionWarning when the
// caller passes none. It takes the version and the channel label.
const DefaultWarningKey = "COM_KUNENA_VERSION_WARNING"

// VersionStore reads the installer's version table.
type VersionStore interface {
	Prefix() string
	TableExists(ctx context.Context, table string) (bool, error)
	// LatestVersion returns (nil, nil) when the table holds no rows.
	LatestVersion(ctx context.Context, table string) (*model.VersionRecord, error)
}

// Translator resolves language keys.
type Translator interface {
	Text(key string) string
	Sprintf(key string, args ...any) string
}

// VersionService reports on the running release and the version recorded by
// the installer.
type VersionService struct {
	store   VersionStore
	lang    Translator
	release config.ReleaseConfig
}

// NewVersionService builds a VersionService. store may be nil when no
// database is configured; lookups then return the default record.
func NewVersionService(store VersionStore, lang Translator, release config.ReleaseConfig) *VersionService {
	if release.CopyrightYears == "" {
		release.CopyrightYears = "2008 - 2020"
	}
	return &VersionService{store: store, lang: lang, release: release}
}

// Release returns the running release information.
func (s *VersionService) Release() config.ReleaseConfig { return s.release }

// Stability classifies the running version.
func (s *VersionService) Stability() model.Stability {
	return model.StabilityOf(s.release.Version)
}

// VersionWarning returns msg (a language key taking the version and channel
// label) followed by the channel warning, or "" for a stable version.
func (s *VersionService) VersionWarning(msg string) string {
	if msg == "" {
		msg = DefaultWarningKey
	}
	stability := s.Stability()
	if stability.Stable() {
		return ""
	}

	label := s.lang.Text(stability.LabelKey())
	warning := s.lang.Text(stability.WarningKey())
	if label == "" || warning == "" {
		return ""
	}

	return s.lang.Sprintf(msg, "<strong>"+strings.ToUpper(s.release.Version), label+"</strong>") + " " + warning
}

// CheckVersion reports whether a version row exists whose state is still
// empty, i.e. the recorded version has not been confirmed as current.
func (s *VersionService) CheckVersion(ctx context.Context) (bool, error) {
	version, err := s.DBVersion(ctx, "")
	if err != nil {
		return false, err
	}
	if !version.HasVersion() {
		return false, nil
	}
	if !version.StateEmpty() {
		return false, nil
	}
	return true, nil
}

// DBVersion reads the newest row of {dbPrefix}{tablePrefix}version.
// tablePrefix defaults to "kunena_". A missing table, an empty table or a row
// without state all yield the default record. A non-empty state recorded for
// another version than the running one is cleared.
func (s *VersionService) DBVersion(ctx context.Context, tablePrefix string) (*model.VersionRecord, error) {
	if tablePrefix == "" {
		tablePrefix = model.DefaultTablePrefix
	}
	if s.store == nil {
		metrics.VersionLookups.WithLabelValues("no_store").Inc()
		return model.DefaultVersionRecord(), nil
	}

	table := s.store.Prefix() + tablePrefix + "version"

	exists, err := s.store.TableExists(ctx, table)
	if err != nil {
		metrics.VersionLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("get db version: %w", err)
	}

	var version *model.VersionRecord
	if exists {
		version, err = s.store.LatestVersion(ctx, table)
		if err != nil {
			metrics.VersionLookups.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("get db version: %w", err)
		}
	} else {
		log.Debug().Str("table", table).Msg("version table not found")
	}

	switch {
	case !exists:
		metrics.VersionLookups.WithLabelValues("missing_table").Inc()
		return model.DefaultVersionRecord(), nil
	case version == nil:
		metrics.VersionLookups.WithLabelValues("empty").Inc()
		return model.DefaultVersionRecord(), nil
	case version.State == nil:
		metrics.VersionLookups.WithLabelValues("no_state").Inc()
		return model.DefaultVersionRecord(), nil
	}

	if !version.StateEmpty() && version.VersionString() != s.release.Version {
		log.Info().
			Str("installed", version.VersionString()).
			Str("running", s.release.Version).
			Str("state", version.StateString()).
			Msg("installed version state belongs to another release, clearing")
		empty := ""
		version.State = &empty
		metrics.VersionLookups.WithLabelValues("stale").Inc()
		return version, nil
	}

	metrics.VersionLookups.WithLabelValues("current").Inc()
	return version, nil
}

// VersionHTML returns "Kunena X.Y.Z | YYYY-MM-DD [ name ]".
func (s *VersionService) VersionHTML() string {
	return "Kunena " + strings.ToUpper(s.release.Version) + " | " + s.release.Date + " [ " + s.release.Name + " ]"
}

// CopyrightHTML returns the copyright and license line with links.
func (s *VersionService) CopyrightHTML() string {
	return ": &copy; " + s.release.CopyrightYears + " " + s.lang.Text("COM_KUNENA_VERSION_COPYRIGHT") +
		`: <a href = "https://www.kunena.org/team" target = "_blank">` +
		s.lang.Text("COM_KUNENA_VERSION_TEAM") + "</a>  | " + s.lang.Text("COM_KUNENA_VERSION_LICENSE") +
		`: <a href = "https://www.gnu.org/copyleft/gpl.html" target = "_blank">` +
		s.lang.Text("COM_KUNENA_VERSION_GPL") + "</a>"
}

// LongVersionHTML joins VersionHTML and CopyrightHTML with " | ".
func (s *VersionService) LongVersionHTML() string {
	return s.VersionHTML() + " | " + s.CopyrightHTML()
}

// Status gathers everything the admin dashboard shows about versions.
func (s *VersionService) Status(ctx context.Context) (*model.VersionStatus, error) {
	record, err := s.DBVersion(ctx, "")
	if err != nil {
		return nil, err
	}

	return &model.VersionStatus{
		Version:         s.release.Version,
		VersionDate:     s.release.Date,
		VersionName:     s.release.Name,
		Stability:       s.Stability(),
		Warning:         s.VersionWarning(""),
		VersionHTML:     s.VersionHTML(),
		LongVersionHTML: s.LongVersionHTML(),
		DBVersion:       record,
		NeedsCheck:      record.HasVersion() && record.StateEmpty(),
		Action:          CompareVersions(record.VersionString(), s.release.Version),
	}, nil
}
