package service

import (
	"github.com/Masterminds/semver/v3"
	"github.com/kunena/forumadmin/internal/installer/model"
)

// CompareVersions decides what an installer would do going from installed to
// running. Only identical version strings need nothing; the recorded install
// state belongs to that exact string. Differently written versions that
// compare equal, such as "v6.0.0" and "6.0.0", re-run the upgrade. Versions
// that are not valid semver are unknown.
func CompareVersions(installed, running string) model.Action {
	if installed == "" {
		return model.ActionInstall
	}
	if installed == running {
		return model.ActionNone
	}

	iv, err := semver.NewVersion(installed)
	if err != nil {
		return model.ActionUnknown
	}
	rv, err := semver.NewVersion(running)
	if err != nil {
		return model.ActionUnknown
	}

	if rv.LessThan(iv) {
		return model.ActionDowngrade
	}
	return model.ActionUpgrade
}
