package creaturecache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
)

const (
	// RefreshedEventType is published on the event bus after every
	// successful build, with the new snapshot as the event source
	RefreshedEventType = "bestiary.cache.refreshed"

	// DefaultTickInterval is how often the refresher checks for expiry
	DefaultTickInterval = 60 * time.Second
	// DefaultExpiration is how long a snapshot is served before a rebuild
	DefaultExpiration = time.Hour

	tracerName = "github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// RefresherConfig holds the dependencies for the refresher
type RefresherConfig struct {
	Repository  creature.Repository
	Holder      *Holder
	EventBus    events.EventBus
	Clock       clock.Clock
	IDGenerator idgen.Generator

	TickInterval time.Duration
	Expiration   time.Duration
	KeyPattern   string
}

// Validate ensures all required dependencies are provided
func (c *RefresherConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Holder == nil {
		vb.RequiredField("Holder")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.TickInterval < 0 {
		vb.Field("TickInterval", "must not be negative")
	}
	if c.Expiration < 0 {
		vb.Field("Expiration", "must not be negative")
	}
	return vb.Build()
}

// Refresher is the single writer of a Holder. It rebuilds the snapshot from
// the repository whenever the published one is older than the expiration.
type Refresher struct {
	repo       creature.Repository
	holder     *Holder
	bus        events.EventBus
	clock      clock.Clock
	idGen      idgen.Generator
	tick       time.Duration
	expiration time.Duration
	pattern    string
	tracer     trace.Tracer

	// mu serializes builds; lastBuild is only advanced on success
	mu        sync.Mutex
	lastBuild time.Time
}

// NewRefresher creates a refresher with the provided dependencies
func NewRefresher(cfg *RefresherConfig) (*Refresher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Refresher{
		repo:       cfg.Repository,
		holder:     cfg.Holder,
		bus:        cfg.EventBus,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
		tick:       cfg.TickInterval,
		expiration: cfg.Expiration,
		pattern:    cfg.KeyPattern,
		tracer:     otel.Tracer(tracerName),
	}
	if r.tick == 0 {
		r.tick = DefaultTickInterval
	}
	if r.expiration == 0 {
		r.expiration = DefaultExpiration
	}
	if r.pattern == "" {
		r.pattern = creature.KeyPattern
	}
	return r, nil
}

// Run attempts a build immediately and then on every tick once the current
// snapshot has expired. Failures are logged and retried on the next tick.
// Run returns when ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Creature cache refresher started",
		"tick", r.tick.String(),
		"expiration", r.expiration.String(),
	)

	r.refreshIfExpired(ctx)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Creature cache refresher stopped")
			return nil
		case <-ticker.C:
			r.refreshIfExpired(ctx)
		}
	}
}

// Expired reports whether the next tick would rebuild
func (r *Refresher) Expired() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expiredLocked()
}

func (r *Refresher) expiredLocked() bool {
	return r.lastBuild.IsZero() || r.clock.Now().Sub(r.lastBuild) >= r.expiration
}

func (r *Refresher) refreshIfExpired(ctx context.Context) {
	if !r.Expired() {
		return
	}
	if _, err := r.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "Creature cache refresh failed, retrying next tick",
			"error", err,
		)
	}
}

// Refresh forces one build cycle: pull, build, publish and announce
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := r.tracer.Start(ctx, "creaturecache.Refresh",
		trace.WithAttributes(attribute.String("creaturecache.key_pattern", r.pattern)),
	)
	defer span.End()

	started := r.clock.Now()
	out, err := r.repo.ListAll(ctx, &creature.ListAllInput{KeyPattern: r.pattern})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list creatures failed")
		return nil, errors.Wrap(err, "failed to pull creatures")
	}

	snap := Build(out.Creatures, BuildMeta{
		ID:      r.idGen.Generate(),
		BuiltAt: started,
	})
	r.holder.Store(snap)
	r.lastBuild = started

	span.SetAttributes(
		attribute.String("creaturecache.snapshot_id", snap.GetID()),
		attribute.Int("creaturecache.creatures", snap.Len()),
		attribute.Int("creaturecache.skipped", out.Skipped),
		attribute.Int("creaturecache.duplicates", snap.Duplicates()),
	)

	slog.InfoContext(ctx, "Creature cache rebuilt",
		"snapshot_id", snap.GetID(),
		"creatures", snap.Len(),
		"skipped", out.Skipped,
		"duplicates", snap.Duplicates(),
	)

	if err := r.bus.Publish(ctx, events.NewGameEvent(RefreshedEventType, snap, nil)); err != nil {
		// the snapshot is already live; subscribers catch up on the next build
		slog.WarnContext(ctx, "Failed to publish cache refreshed event",
			"snapshot_id", snap.GetID(),
			"error", err,
		)
	}

	return snap, nil
}
