// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bedbase Contributors

package vector

import (
	"strings"

	"github.com/google/uuid"
)

// PointID converts a registry identifier into a point UUID. Registry
// identifiers are normally 32-character hex digests, which map onto a
// UUID by inserting the standard hyphens. Anything else is hashed
// into a deterministic name-based UUID.
func PointID(id string) string {
	norm := strings.ToLower(strings.ReplaceAll(id, "-", ""))
	if len(norm) == 32 && isHex(norm) {
		return norm[0:8] + "-" + norm[8:12] + "-" + norm[12:16] + "-" + norm[16:20] + "-" + norm[20:32]
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
}

// RegistryID recovers the hex digest form of a point UUID.
func RegistryID(pointID string) string {
	return strings.ReplaceAll(pointID, "-", "")
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
