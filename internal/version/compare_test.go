package version

import (
	"testing"

	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name           string
		agentVersion   string
		feederVersion  string
		expectError    bool
		errorContains  string
		errorCode      errors.ErrorCode
	}{
		// Compatible cases
		{
			name:           "exact match",
			agentVersion:   "1.2.0",
			feederVersion:  "1.2.0",
			expectError:    false,
		},
		{
			name:           "agent patch higher",
			agentVersion:   "1.2.1",
			feederVersion:  "1.2.0",
			expectError:    false,
		},
		{
			name:           "feeder patch higher",
			agentVersion:   "1.2.0",
			feederVersion:  "1.2.5",
			expectError:    false,
		},
		{
			name:           "same major minor different patch",
			agentVersion:   "2.5.10",
			feederVersion:  "2.5.3",
			expectError:    false,
		},

		// Incompatible cases
		{
			name:           "agent minor higher",
			agentVersion:   "1.3.0",
			feederVersion:  "1.2.0",
			expectError:    true,
			errorContains:  "minor version mismatch",
			errorCode:      errors.ErrCodeVersionMismatch,
		},
		{
			name:           "agent minor lower",
			agentVersion:   "1.1.0",
			feederVersion:  "1.2.0",
			expectError:    true,
			errorContains:  "minor version mismatch",
			errorCode:      errors.ErrCodeVersionMismatch,
		},
		{
			name:           "major version differs",
			agentVersion:   "2.0.0",
			feederVersion:  "1.2.0",
			expectError:    true,
			errorContains:  "major version mismatch",
			errorCode:      errors.ErrCodeVersionMismatch,
		},
		{
			name:           "agent is main",
			agentVersion:   "main",
			feederVersion:  "1.2.0",
			expectError:    false,
		},
		{
			name:           "agent is main with different feeder",
			agentVersion:   "main",
			feederVersion:  "1.3.0",
			expectError:    false,
		},
		{
			name:           "both are main",
			agentVersion:   "main",
			feederVersion:  "main",
			expectError:    false,
		},
		{
			name:           "feeder is main",
			agentVersion:   "1.2.0",
			feederVersion:  "main",
			expectError:    false,
		},

		// Edge cases with v prefix
		{
			name:           "v prefix on agent",
			agentVersion:   "v1.2.0",
			feederVersion:  "1.2.0",
			expectError:    false,
		},
		{
			name:           "v prefix on feeder",
			agentVersion:   "1.2.0",
			feederVersion:  "v1.2.0",
			expectError:    false,
		},
		{
			name:           "v prefix on both",
			agentVersion:   "v1.2.0",
			feederVersion:  "v1.2.0",
			expectError:    false,
		},

		// Edge cases with prerelease and metadata
		{
			name:           "prerelease version",
			agentVersion:   "1.2.0-alpha",
			feederVersion:  "1.2.0",
			expectError:    false,
		},
		{
			name:           "build metadata",
			agentVersion:   "1.2.0+build123",
			feederVersion:  "1.2.0",
			expectError:    false,
		},

		// Invalid versions
		{
			name:           "invalid agent version",
			agentVersion:   "not-a-version",
			feederVersion:  "1.2.0",
			expectError:    true,
			errorContains:  "invalid agent version",
			errorCode:      errors.ErrCodeInvalidVersion,
		},
		{
			name:           "invalid feeder version",
			agentVersion:   "1.2.0",
			feederVersion:  "not-a-version",
			expectError:    true,
			errorContains:  "invalid feeder version",
			errorCode:      errors.ErrCodeInvalidVersion,
		},
		{
			name:           "empty agent version",
			agentVersion:   "",
			feederVersion:  "1.2.0",
			expectError:    true,
			errorContains:  "invalid agent version",
			errorCode:      errors.ErrCodeInvalidVersion,
		},
		{
			name:           "empty feeder version",
			agentVersion:   "1.2.0",
			feederVersion:  "",
			expectError:    true,
			errorContains:  "invalid feeder version",
			errorCode:      errors.ErrCodeInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.agentVersion, tt.feederVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.errorCode))
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}
