// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfoUnknown stands in for build metadata that was not injected.
const BuildInfoUnknown = "N/A"

// AppBuildInfo carries build-time metadata injected by linker flags into the
// server, seed and client binaries.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

// WithDefaults replaces every empty value with BuildInfoUnknown.
func (a AppBuildInfo) WithDefaults() AppBuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return BuildInfoUnknown
		}
		return s
	}

	return AppBuildInfo{
		buildVersion: orUnknown(a.buildVersion),
		buildDate:    orUnknown(a.buildDate),
		buildCommit:  orUnknown(a.buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String renders the banner printed by the binaries on start.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", a.buildVersion, a.buildDate, a.buildCommit)
}
