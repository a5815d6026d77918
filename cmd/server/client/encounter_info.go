package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var (
	infoPartyLevels []int
	infoEnemyLevels []int
)

var encounterInfoCmd = &cobra.Command{
	Use:   "encounter-info",
	Short: "Rate a fight by party and enemy levels",
	Long: `Rate a fight. Example:

  encounter-info --party 4,4,4,4 --enemies 5,3,3`,
	RunE: runEncounterInfo,
}

func init() {
	encounterInfoCmd.Flags().IntSliceVar(&infoPartyLevels, "party", nil, "Party member levels")
	encounterInfoCmd.Flags().IntSliceVar(&infoEnemyLevels, "enemies", nil, "Enemy levels")
	_ = encounterInfoCmd.MarkFlagRequired("party") // nolint:errcheck // flag is defined above
}

func runEncounterInfo(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEncounterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetEncounterInfo(ctx, &v1alpha1.GetEncounterInfoRequest{
		PartyLevels: infoPartyLevels,
		EnemyLevels: infoEnemyLevels,
	})
	if err != nil {
		return describeError("rate encounter", err)
	}

	fmt.Printf("Party %v vs enemies %v\n", infoPartyLevels, infoEnemyLevels)
	fmt.Printf("XP: %d (%s)\n\n", resp.XP, resp.Difficulty)
	fmt.Printf("Thresholds:\n")
	printThresholds(resp.Thresholds)

	return nil
}
