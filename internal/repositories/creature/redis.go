package creature

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-encounters/internal/redis"
)

const (
	creatureKeyPrefix = "creature:"
	indexKeyPrefix    = "idx:"

	scanBatchSize = 500

	errInvalidID = "creature id must be positive"
)

// dropEmptyValue removes a value from a dimension's value set once its
// category set has no members left
var dropEmptyValue = redis.NewScript(`
if redis.call("SCARD", KEYS[1]) == 0 then
	return redis.call("SREM", KEYS[2], ARGV[1])
end
return 0
`)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis creature repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed creature repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// RecordKey returns the key a creature record is stored under
func RecordKey(id int64) string {
	return creatureKeyPrefix + strconv.FormatInt(id, 10)
}

// CategoryKey returns the key of the id set for a dimension value
func CategoryKey(d bestiary.Dimension, value string) string {
	return fmt.Sprintf("%s%s:%s", indexKeyPrefix, d.Key(), value)
}

// ValuesKey returns the key of the set of known values of a dimension
func ValuesKey(d bestiary.Dimension) string {
	return indexKeyPrefix + d.Key()
}

func (r *redisRepository) ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error) {
	pattern := KeyPattern
	if input != nil && input.KeyPattern != "" {
		pattern = input.KeyPattern
	}

	keys, err := r.scanKeys(ctx, pattern)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to scan keys matching %s", pattern)
	}
	if len(keys) == 0 {
		return &ListAllOutput{}, nil
	}

	cmds := make([]*redis.StringCmd, len(keys))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.Get(ctx, key)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load creature records")
	}

	out := &ListAllOutput{Creatures: make([]*bestiary.Creature, 0, len(keys))}
	for i, cmd := range cmds {
		raw, err := cmd.Bytes()
		if err != nil {
			// deleted between SCAN and GET
			continue
		}
		c, err := decodeCreature(raw)
		if err != nil {
			slog.WarnContext(ctx, "Skipping undecodable creature record",
				"key", keys[i],
				"error", err,
			)
			out.Skipped++
			continue
		}
		out.Creatures = append(out.Creatures, c)
	}

	slog.DebugContext(ctx, "Listed creatures",
		"pattern", pattern,
		"count", len(out.Creatures),
		"skipped", out.Skipped,
	)

	return out, nil
}

// scanKeys walks every master when the client is a cluster client, since a
// plain SCAN only covers a single node.
func (r *redisRepository) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	cluster, ok := r.client.(*redis.ClusterClient)
	if !ok {
		return scanNode(ctx, r.client, pattern)
	}

	var (
		mu   sync.Mutex
		keys []string
	)
	err := cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
		nodeKeys, err := scanNode(ctx, node, pattern)
		if err != nil {
			return err
		}
		mu.Lock()
		keys = append(keys, nodeKeys...)
		mu.Unlock()
		return nil
	})
	return keys, err
}

func scanNode(ctx context.Context, c redis.Cmdable, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID <= 0 {
		return nil, errors.InvalidArgument(errInvalidID)
	}

	c, err := r.get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Creature: c}, nil
}

func (r *redisRepository) get(ctx context.Context, id int64) (*bestiary.Creature, error) {
	raw, err := r.client.Get(ctx, RecordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("creature %d not found", id).WithMeta("creature_id", id)
		}
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get creature %d", id)
	}

	c, err := decodeCreature(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal creature %d", id)
	}
	return c, nil
}

func (r *redisRepository) IDsByCategory(ctx context.Context, input *IDsByCategoryInput) (*IDsByCategoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	value := input.Dimension.Canonical(input.Value)
	members, err := r.client.SMembers(ctx, CategoryKey(input.Dimension, value)).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to read %s ids for %q", input.Dimension, value)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			slog.WarnContext(ctx, "Ignoring malformed category member",
				"dimension", input.Dimension.String(),
				"value", value,
				"member", m,
			)
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return &IDsByCategoryOutput{IDs: ids}, nil
}

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil || input.Creature == nil {
		return nil, errors.InvalidArgument("creature is required")
	}

	c := input.Creature.Clone()
	c.Normalize()
	if err := validateCreature(c); err != nil {
		return nil, err
	}

	previous, err := r.get(ctx, c.ID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal creature %d", c.ID)
	}

	member := strconv.FormatInt(c.ID, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil {
			for _, d := range bestiary.Dimensions() {
				for _, v := range d.ValuesOf(previous) {
					pipe.SRem(ctx, CategoryKey(d, v), member)
				}
			}
		}
		pipe.Set(ctx, RecordKey(c.ID), data, 0)
		for _, d := range bestiary.Dimensions() {
			for _, v := range d.ValuesOf(c) {
				pipe.SAdd(ctx, CategoryKey(d, v), member)
				pipe.SAdd(ctx, ValuesKey(d), v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to store creature %d", c.ID)
	}

	if previous != nil {
		if err := r.pruneValues(ctx, previous, c); err != nil {
			return nil, err
		}
	}

	slog.DebugContext(ctx, "Stored creature",
		"creature_id", c.ID,
		"name", c.Name,
		"replaced", previous != nil,
	)

	return &PutOutput{Creature: c}, nil
}

// pruneValues drops dimension values the previous record held and the new
// one does not, when no other creature holds them either
func (r *redisRepository) pruneValues(ctx context.Context, previous, current *bestiary.Creature) error {
	for _, d := range bestiary.Dimensions() {
		kept := d.ValuesOf(current)
		for _, v := range d.ValuesOf(previous) {
			if slices.Contains(kept, v) {
				continue
			}
			err := dropEmptyValue.Run(ctx, r.client, []string{CategoryKey(d, v), ValuesKey(d)}, v).Err()
			if err != nil {
				return errors.WrapWithCodef(err, errors.CodeUnavailable,
					"failed to prune %s value %q", d, v)
			}
		}
	}
	return nil
}

func (r *redisRepository) ListCategoryValues(ctx context.Context, input *ListCategoryValuesInput) (*ListCategoryValuesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	values, err := r.client.SMembers(ctx, ValuesKey(input.Dimension)).Result()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable,
			"failed to read %s values", input.Dimension)
	}
	input.Dimension.SortValues(values)

	return &ListCategoryValuesOutput{Values: values}, nil
}

func decodeCreature(raw []byte) (*bestiary.Creature, error) {
	var c bestiary.Creature
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.Normalize()
	return &c, nil
}

func validateCreature(c *bestiary.Creature) error {
	vb := errors.NewValidationBuilder()
	if c.ID <= 0 {
		vb.Field("id", "must be positive")
	}
	if c.Name == "" {
		vb.RequiredField("name")
	}
	if c.HP <= 0 {
		vb.Field("hp", "must be positive")
	}
	if c.Size.Ordinal() < 0 {
		vb.InvalidField("size", string(c.Size))
	}
	if c.Rarity.Ordinal() < 0 {
		vb.InvalidField("rarity", string(c.Rarity))
	}
	if _, err := bestiary.ParseAlignment(string(c.Alignment)); err != nil {
		vb.InvalidField("alignment", string(c.Alignment))
	}
	return vb.Build()
}
