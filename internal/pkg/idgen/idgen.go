// Package idgen names snapshots and generated encounters
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/KirkDiggler/rpg-encounters/internal/pkg/clock"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// TimestampLayout is the UTC time format embedded in timestamped ids
const TimestampLayout = "20060102T150405Z"

// TimestampedGenerator embeds the clock's time in each id so cache snapshots
// can be matched to refresh log lines by eye
type TimestampedGenerator struct {
	prefix string
	clock  clock.Clock
}

// NewTimestamped creates a generator of prefix_<utc time>_<random> ids
func NewTimestamped(prefix string, c clock.Clock) *TimestampedGenerator {
	return &TimestampedGenerator{prefix: prefix, clock: c}
}

// Generate returns a new timestamped id
func (g *TimestampedGenerator) Generate() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		panic(fmt.Sprintf("crypto/rand.Read failed: %v", err))
	}
	return fmt.Sprintf("%s_%s_%s",
		g.prefix,
		g.clock.Now().UTC().Format(TimestampLayout),
		hex.EncodeToString(suffix),
	)
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates time-ordered (version 7) UUIDs, so encounter ids
// sort by creation
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if g.prefix != "" {
		return g.prefix + "_" + id.String()
	}
	return id.String()
}
