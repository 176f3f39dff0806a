package service

import (
	"testing"

	"github.com/kunena/forumadmin/internal/installer/model"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		running   string
		expected  model.Action
	}{
		{"fresh install", "", "6.0.0", model.ActionInstall},
		{"same", "6.0.0", "6.0.0", model.ActionNone},
		{"upgrade", "5.2.3", "6.0.0", model.ActionUpgrade},
		{"upgrade from prerelease", "6.0.0-RC1", "6.0.0", model.ActionUpgrade},
		{"downgrade", "6.0.1", "6.0.0", model.ActionDowngrade},
		{"same release written differently", "v6.0.0", "6.0.0", model.ActionUpgrade},
		{"same release other build", "6.0.0+1", "6.0.0+2", model.ActionUpgrade},
		{"unparsable", "2.0.0RCBETA", "2.0.0", model.ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareVersions(tt.installed, tt.running); got != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %v, want %v", tt.installed, tt.running, got, tt.expected)
			}
		})
	}
}
