package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var getCreatureCmd = &cobra.Command{
	Use:   "get-creature [id]",
	Short: "Get a single creature by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetCreature,
}

func runGetCreature(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid creature id %q: %w", args[0], err)
	}

	client, cleanup, err := createBestiaryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetCreature(ctx, &v1alpha1.GetCreatureRequest{ID: id})
	if err != nil {
		return describeError("get creature", err)
	}

	c := resp.Creature
	fmt.Printf("%s (#%d)\n", c.Name, c.ID)
	fmt.Printf("  Level: %d\n", c.Level)
	fmt.Printf("  HP: %d\n", c.HP)
	fmt.Printf("  Size: %s\n", c.Size)
	fmt.Printf("  Alignment: %s\n", c.Alignment)
	fmt.Printf("  Rarity: %s\n", c.Rarity)
	fmt.Printf("  Family: %s\n", c.Family)
	fmt.Printf("  Melee: %t  Ranged: %t  Spell caster: %t\n", c.IsMelee, c.IsRanged, c.IsSpellCaster)
	if len(c.Sources) > 0 {
		fmt.Printf("  Sources: %v\n", c.Sources)
	}
	fmt.Printf("  Archive: %s\n", c.ArchiveLink)

	return nil
}
