package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/config"
	"github.com/KirkDiggler/rpg-encounters/internal/redis"
	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load creatures from a YAML file into Redis",
	Long: `Load a YAML bestiary into Redis. The file holds a top level "creatures"
list; records with an existing id are replaced and their category sets moved.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML bestiary to load")
	_ = seedCmd.MarkFlagRequired("file") // nolint:errcheck // flag is defined above
}

// seedDocument is the layout of a bestiary file
type seedDocument struct {
	Creatures []*bestiary.Creature `yaml:"creatures"`
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := os.Open(seedFile)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to open %s", seedFile)
	}
	defer func() {
		_ = f.Close() // nolint:errcheck // read only
	}()

	client, err := redis.Connect(cfg.RedisEndpoints, cfg.RedisMasterName, cfg.RedisOptions())
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore on exit
	}()

	repo, err := creaturerepo.NewRedis(&creaturerepo.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	return seedCreatures(cmd.Context(), repo, f, cmd.OutOrStdout())
}

// seedCreatures stores every creature in r and reports how many values each
// dimension holds afterwards. It stops at the first record the repository
// rejects.
func seedCreatures(ctx context.Context, repo creaturerepo.Repository, r io.Reader, w io.Writer) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc seedDocument
	if err := dec.Decode(&doc); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode bestiary")
	}
	if len(doc.Creatures) == 0 {
		return errors.InvalidArgument("bestiary holds no creatures")
	}

	for i, c := range doc.Creatures {
		if c == nil {
			return errors.InvalidArgumentf("creature %d is empty", i)
		}
		if _, err := repo.Put(ctx, &creaturerepo.PutInput{Creature: c}); err != nil {
			return errors.Wrapf(err, "failed to store creature %d (%s)", c.ID, c.Name)
		}
	}

	fmt.Fprintf(w, "Seeded %d creatures\n", len(doc.Creatures))
	for _, d := range bestiary.Dimensions() {
		out, err := repo.ListCategoryValues(ctx, &creaturerepo.ListCategoryValuesInput{Dimension: d})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-12s %d values\n", d.String(), len(out.Values))
	}
	return nil
}
