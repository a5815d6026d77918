package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var listFlags struct {
	sortField      string
	direction      string
	cursor         int
	pageSize       int
	filters        []string
	nameContains   string
	familyContains string
	minLevel       int
	maxLevel       int
}

var listCreaturesCmd = &cobra.Command{
	Use:   "list-creatures",
	Short: "Page through the bestiary",
	Long: `List creatures sorted and filtered. Example:

  list-creatures --sort LEVEL --direction DESC --filter rarity=RARE,UNIQUE --page-size 20`,
	RunE: runListCreatures,
}

func init() {
	f := listCreaturesCmd.Flags()
	f.StringVar(&listFlags.sortField, "sort", "ID", "Sort field")
	f.StringVar(&listFlags.direction, "direction", "ASC", "Sort direction (ASC, DESC)")
	f.IntVar(&listFlags.cursor, "cursor", 0, "Position to start from")
	f.IntVar(&listFlags.pageSize, "page-size", 0, "Creatures per page")
	f.StringArrayVar(&listFlags.filters, "filter", nil, "Category filter DIMENSION=value[,value]")
	f.StringVar(&listFlags.nameContains, "name", "", "Name substring")
	f.StringVar(&listFlags.familyContains, "family", "", "Family substring")
	f.IntVar(&listFlags.minLevel, "min-level", 0, "Minimum level")
	f.IntVar(&listFlags.maxLevel, "max-level", 0, "Maximum level")
}

func runListCreatures(cmd *cobra.Command, _ []string) error {
	filters, err := parseFilterFlags(listFlags.filters)
	if err != nil {
		return err
	}

	req := &v1alpha1.ListCreaturesRequest{
		SortField:      listFlags.sortField,
		Direction:      listFlags.direction,
		Cursor:         listFlags.cursor,
		PageSize:       listFlags.pageSize,
		Filters:        filters,
		NameContains:   listFlags.nameContains,
		FamilyContains: listFlags.familyContains,
	}
	if cmd.Flags().Changed("min-level") {
		req.MinLevel = &listFlags.minLevel
	}
	if cmd.Flags().Changed("max-level") {
		req.MaxLevel = &listFlags.maxLevel
	}

	client, cleanup, err := createBestiaryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListCreatures(ctx, req)
	if err != nil {
		return describeError("list creatures", err)
	}

	fmt.Printf("Creatures %d-%d of %d:\n", listFlags.cursor+1, resp.NextCursor, resp.Total)
	for _, c := range resp.Creatures {
		printCreature(c)
	}
	if resp.NextCursor < resp.Total {
		fmt.Printf("\nNext page: --cursor %d\n", resp.NextCursor)
	}

	return nil
}
