/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/HamedShams/release-manager/internal/domain"
)

type Bump string

const (
	BumpNone  Bump = "none"
	BumpPatch Bump = "patch"
	BumpMinor Bump = "minor"
)

type VersionAdvice struct {
	CurrentVersion     string               `json:"currentVersion"`
	RecommendedVersion string               `json:"recommendedVersion"`
	Bump               Bump                 `json:"bump"`
	FreezeEnabled      bool                 `json:"freezeEnabled"`
	ReleaseStatus      domain.ReleaseStatus `json:"releaseStatus"`
	NewFeatures        int                  `json:"newFeatures"`
	MaintenanceItems   int                  `json:"maintenanceItems"`
	Reason             string               `json:"reason"`
}

// AdviseVersion picks the next version. A freeze pins the current version;
// otherwise features ready for enablement mean a minor bump and maintenance
// work alone means a patch. Bumping drops any pre-release suffix.
func AdviseVersion(current string, lc domain.ReleaseLifecycle, items []domain.ContentWorkItem) (VersionAdvice, error) {
	current = strings.TrimSpace(current)
	if current == "" {
		current = lc.BaseVersion
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return VersionAdvice{}, fmt.Errorf("parse version %q: %w", current, err)
	}

	a := VersionAdvice{
		CurrentVersion: v.String(),
		FreezeEnabled:  lc.VersionFreezeEnabled,
		ReleaseStatus:  lc.ReleaseStatus,
	}
	for _, it := range items {
		switch it.WorkflowStatus {
		case domain.StageReadyForEnablement:
			a.NewFeatures++
		case domain.StageMaintenance:
			a.MaintenanceItems++
		}
	}

	var next semver.Version
	switch {
	case lc.VersionFreezeEnabled:
		a.Bump = BumpNone
		next = *v
		a.Reason = "Version freeze is enabled: the version stays pinned until the freeze is lifted."
	case a.NewFeatures > 0:
		a.Bump = BumpMinor
		next = v.IncMinor()
		a.Reason = fmt.Sprintf("%d feature(s) are ready for enablement.", a.NewFeatures)
	case a.MaintenanceItems > 0:
		a.Bump = BumpPatch
		next = v.IncPatch()
		a.Reason = fmt.Sprintf("Only maintenance updates are pending (%d item(s)).", a.MaintenanceItems)
	default:
		a.Bump = BumpNone
		next = *v
		a.Reason = "No new features or maintenance updates since the current version."
	}
	a.RecommendedVersion = next.String()
	return a, nil
}
