package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var filterValuesCmd = &cobra.Command{
	Use:   "filter-values [dimension]",
	Short: "List the values a filter dimension can take",
	Long: `List the known values of a dimension, e.g. FAMILY, LEVEL, ALIGNMENT, SIZE,
RARITY, MELEE, RANGED, SPELLCASTER or SOURCE.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilterValues,
}

func runFilterValues(_ *cobra.Command, args []string) error {
	client, cleanup, err := createBestiaryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListFilterValues(ctx, &v1alpha1.ListFilterValuesRequest{
		Dimension: strings.ToUpper(args[0]),
	})
	if err != nil {
		return describeError("list filter values", err)
	}

	fmt.Printf("%s (%d values):\n", resp.Dimension, len(resp.Values))
	for _, v := range resp.Values {
		fmt.Printf("  %s\n", v)
	}

	return nil
}
