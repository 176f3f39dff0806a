package model

import "strings"

// DefaultTablePrefix is the component prefix inserted between the CMS prefix
// and the "version" table name.
const DefaultTablePrefix = "kunena_"

// VersionRecord is one row of the {prefix}kunena_version table. Nullable columns
// are pointers; a nil Version means the record carries no version at all.
type VersionRecord struct {
	ID          int64   `json:"id,omitempty" db:"id"`
	Version     *string `json:"version,omitempty" db:"version"`
	VersionDate *string `json:"versiondate,omitempty" db:"versiondate"`
	InstallDate *string `json:"installdate,omitempty" db:"installdate"`
	Build       *string `json:"build,omitempty" db:"build"`
	VersionName *string `json:"versionname,omitempty" db:"versionname"`
	SampleData  *string `json:"sampledata,omitempty" db:"sampledata"`
	State       *string `json:"state" db:"state"`
}

// DefaultVersionRecord is returned whenever no usable row exists.
func DefaultVersionRecord() *VersionRecord {
	empty := ""
	return &VersionRecord{State: &empty}
}

// HasVersion reports whether the version column was present and non-NULL.
func (r *VersionRecord) HasVersion() bool { return r != nil && r.Version != nil }

// VersionString returns the stored version or "".
func (r *VersionRecord) VersionString() string {
	if r == nil || r.Version == nil {
		return ""
	}
	return *r.Version
}

// StateString returns the stored state or "".
func (r *VersionRecord) StateString() string {
	if r == nil || r.State == nil {
		return ""
	}
	return *r.State
}

// StateEmpty reports whether the state is unset. "0" counts as unset because
// installers historically write it for an unfinished step.
func (r *VersionRecord) StateEmpty() bool {
	s := r.StateString()
	return s == "" || s == "0"
}

// Stability is the release channel marker found in a version string.
type Stability string

const (
	StabilityNone  Stability = ""
	StabilityGit   Stability = "GIT"
	StabilityDev   Stability = "DEV"
	StabilityRC    Stability = "RC"
	StabilityBeta  Stability = "BETA"
	StabilityAlpha Stability = "ALPHA"
)

// stabilityOrder is the match priority; the first marker found wins.
var stabilityOrder = []Stability{StabilityGit, StabilityDev, StabilityRC, StabilityBeta, StabilityAlpha}

// StabilityOf classifies version by case-sensitive substring match.
func StabilityOf(version string) Stability {
	for _, s := range stabilityOrder {
		if strings.Contains(version, string(s)) {
			return s
		}
	}
	return StabilityNone
}

// Stable reports whether no unstable marker was found.
func (s Stability) Stable() bool { return s == StabilityNone }

// LabelKey is the language key of the channel label.
func (s Stability) LabelKey() string { return "COM_KUNENA_VERSION_" + string(s) }

// WarningKey is the language key of the channel warning sentence.
func (s Stability) WarningKey() string { return "COM_KUNENA_VERSION_" + string(s) + "_WARNING" }

// Action describes what an installer would do with the installed version.
type Action string

const (
	ActionInstall   Action = "install"
	ActionUpgrade   Action = "upgrade"
	ActionDowngrade Action = "downgrade"
	ActionNone      Action = "none"
	ActionUnknown   Action = "unknown"
)

// VersionStatus is the dashboard summary of the running and installed versions.
type VersionStatus struct {
	Version         string         `json:"version"`
	VersionDate     string         `json:"versionDate"`
	VersionName     string         `json:"versionName"`
	Stability       Stability      `json:"stability,omitempty"`
	Warning         string         `json:"warning,omitempty"`
	VersionHTML     string         `json:"versionHTML"`
	LongVersionHTML string         `json:"longVersionHTML"`
	DBVersion       *VersionRecord `json:"dbVersion"`
	NeedsCheck      bool           `json:"needsCheck"`
	Action          Action         `json:"action"`
}
