package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var generateFlags struct {
	party          []int
	difficulty     string
	adventureGroup string
	filters        []string
	minCreatures   int
	maxCreatures   int
	allowWeak      bool
	allowElite     bool
}

var generateEncounterCmd = &cobra.Command{
	Use:   "generate-encounter",
	Short: "Generate a random encounter for a party",
	Long: `Generate a random encounter whose XP exactly fills a difficulty budget.
Examples:

  generate-encounter --party 3,3,3,3 --difficulty MODERATE
  generate-encounter --party 4,4,4,4 --group MATED_PAIR
  generate-encounter --party 2,2,2 --filter family=Goblin --filter size=SMALL,TINY --max 4`,
	RunE: runGenerateEncounter,
}

func init() {
	f := generateEncounterCmd.Flags()
	f.IntSliceVar(&generateFlags.party, "party", nil, "Party member levels")
	f.StringVar(&generateFlags.difficulty, "difficulty", "", "Difficulty tier, random when empty")
	f.StringVar(&generateFlags.adventureGroup, "group", "", "Adventure group template")
	f.StringArrayVar(&generateFlags.filters, "filter", nil, "Category filter DIMENSION=value[,value]")
	f.IntVar(&generateFlags.minCreatures, "min", 0, "Minimum number of creatures")
	f.IntVar(&generateFlags.maxCreatures, "max", 0, "Maximum number of creatures")
	f.BoolVar(&generateFlags.allowWeak, "weak", false, "Allow weak variants")
	f.BoolVar(&generateFlags.allowElite, "elite", false, "Allow elite variants")
	_ = generateEncounterCmd.MarkFlagRequired("party") // nolint:errcheck // flag is defined above
}

func runGenerateEncounter(_ *cobra.Command, _ []string) error {
	filters, err := parseFilterFlags(generateFlags.filters)
	if err != nil {
		return err
	}

	client, cleanup, err := createEncounterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GenerateEncounter(ctx, &v1alpha1.GenerateEncounterRequest{
		PartyLevels:    generateFlags.party,
		Difficulty:     generateFlags.difficulty,
		AdventureGroup: generateFlags.adventureGroup,
		Filters:        filters,
		MinCreatures:   generateFlags.minCreatures,
		MaxCreatures:   generateFlags.maxCreatures,
		AllowWeak:      generateFlags.allowWeak,
		AllowElite:     generateFlags.allowElite,
	})
	if err != nil {
		return describeError("generate encounter", err)
	}

	fmt.Printf("Encounter %s\n", resp.EncounterID)
	fmt.Printf("%s\n", strings.Repeat("=", len("Encounter ")+len(resp.EncounterID)))
	fmt.Printf("Difficulty: %s (%d XP)\n", resp.Difficulty, resp.XP)
	fmt.Printf("Creatures (%d):\n", resp.Count)
	for _, c := range resp.Creatures {
		printCreature(c)
	}

	return nil
}
