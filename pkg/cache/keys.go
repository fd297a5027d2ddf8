package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKeyOpts captures everything that changes a rendered artifact
// beyond the plan content itself.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"` // svg, png, pdf
	Scale       float64 `json:"scale"`
	DepthLabels bool    `json:"depth_labels"`
	Labels      bool    `json:"labels"`
	Structure   bool    `json:"structure"` // node-link view instead of to-scale
}

// ArtifactKey generates a cache key for a rendered artifact. planHash is
// the [Hash] of the serialized plan document.
func ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
