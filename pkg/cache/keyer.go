package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactOpts captures every knob that changes a rendered artifact.
// Two renders with the same config hash and the same opts are
// byte-identical, so they may share a cache entry.
type ArtifactOpts struct {
	Format     string `json:"format"`
	DebugBoxes bool   `json:"debug_boxes"`
	Space      string `json:"space,omitempty"`
	Digits     int    `json:"digits,omitempty"`
}

// Keyer builds cache keys for rendered artifacts. A prefix isolates
// namespaces when one cache directory serves several projects.
type Keyer struct {
	prefix string
}

// NewKeyer creates a keyer with an optional namespace prefix.
func NewKeyer(prefix string) *Keyer {
	return &Keyer{prefix: prefix}
}

// ArtifactKey derives the cache key for a rendered artifact from the
// config content hash and the render options.
func (k *Keyer) ArtifactKey(configHash string, opts ArtifactOpts) string {
	return k.prefix + hashKey("artifact", configHash, opts)
}

// hashKey generates "prefix:hash(parts...)" with a full SHA-256 hash to
// avoid collisions.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}
