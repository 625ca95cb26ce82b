package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
)

// CheckCompatibility checks if a running agent can be driven by a feeder build.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Agent 1.2.0, Feeder 1.2.0 -> OK (exact match)
//   - Agent 1.2.1, Feeder 1.2.0 -> OK (patch differs)
//   - Agent 1.3.0, Feeder 1.2.0 -> ERROR (minor differs)
//   - Agent 2.0.0, Feeder 1.2.0 -> ERROR (major differs)
//   - Agent main, Feeder 1.2.0 -> OK (dev build, skip check)
func CheckCompatibility(agentVersion, feederVersion string) error {
	agentVersion = strings.TrimPrefix(agentVersion, "v")
	feederVersion = strings.TrimPrefix(feederVersion, "v")

	if agentVersion == "main" || feederVersion == "main" {
		return nil
	}

	agentSemver, err := semver.NewVersion(agentVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid agent version '%s'", agentVersion)
	}

	feederSemver, err := semver.NewVersion(feederVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid feeder version '%s'", feederVersion)
	}

	if agentSemver.Major() != feederSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "major version mismatch: agent is %d.x.x but feeder requires %d.x.x",
			agentSemver.Major(), feederSemver.Major())
	}

	if agentSemver.Minor() != feederSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "minor version mismatch: agent is %d.%d.x but feeder requires %d.%d.x",
			agentSemver.Major(), agentSemver.Minor(),
			feederSemver.Major(), feederSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
