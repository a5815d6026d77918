package testutils

import (
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils/builders"
)

// Family names used by the fixture bestiary
const (
	FamilyGoblin = "Goblin"
	FamilyKobold = "Kobold"
	FamilyDragon = "Dragon"
)

// FixtureBestiary returns a small bestiary covering every size and rarity,
// levels -1 through 8 and a mix of families
func FixtureBestiary() []*bestiary.Creature {
	return []*bestiary.Creature{
		builders.NewCreatureBuilder(1).WithName("Goblin Warrior").WithLevel(-1).WithHP(6).
			WithFamily(FamilyGoblin).WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentCE).Build(),
		builders.NewCreatureBuilder(2).WithName("Goblin Commando").WithLevel(1).WithHP(18).
			WithFamily(FamilyGoblin).WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentCE).
			WithCombat(true, true, false).Build(),
		builders.NewCreatureBuilder(3).WithName("Goblin Pyro").WithLevel(1).WithHP(16).
			WithFamily(FamilyGoblin).WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentCE).
			WithCombat(false, false, true).Build(),
		builders.NewCreatureBuilder(4).WithName("Kobold Scout").WithLevel(1).WithHP(16).
			WithFamily(FamilyKobold).WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentLE).
			WithCombat(false, true, false).Build(),
		builders.NewCreatureBuilder(5).WithName("Kobold Dragon Mage").WithLevel(2).WithHP(25).
			WithFamily(FamilyKobold).WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentLE).
			WithRarity(bestiary.RarityUncommon).WithCombat(false, false, true).Build(),
		builders.NewCreatureBuilder(6).WithName("Wolf").WithLevel(1).WithHP(24).
			WithSize(bestiary.SizeMedium).WithAlignment(bestiary.AlignmentN).Build(),
		builders.NewCreatureBuilder(7).WithName("Orc Brute").WithLevel(2).WithHP(32).
			WithSize(bestiary.SizeMedium).WithAlignment(bestiary.AlignmentCE).Build(),
		builders.NewCreatureBuilder(8).WithName("Ogre").WithLevel(3).WithHP(50).
			WithSize(bestiary.SizeLarge).WithAlignment(bestiary.AlignmentCE).Build(),
		builders.NewCreatureBuilder(9).WithName("Owlbear").WithLevel(4).WithHP(70).
			WithSize(bestiary.SizeLarge).WithAlignment(bestiary.AlignmentN).Build(),
		builders.NewCreatureBuilder(10).WithName("Young Red Dragon").WithLevel(10).WithHP(210).
			WithFamily(FamilyDragon).WithSize(bestiary.SizeLarge).WithAlignment(bestiary.AlignmentCE).
			WithRarity(bestiary.RarityRare).WithCombat(true, true, true).WithSources("Bestiary", "Bestiary 2").Build(),
		builders.NewCreatureBuilder(11).WithName("Pixie").WithLevel(4).WithHP(40).
			WithSize(bestiary.SizeTiny).WithAlignment(bestiary.AlignmentCG).
			WithRarity(bestiary.RarityUncommon).WithCombat(false, true, true).WithSources("Bestiary 2").Build(),
		builders.NewCreatureBuilder(12).WithName("Ancient Wyrm").WithLevel(8).WithHP(300).
			WithFamily(FamilyDragon).WithSize(bestiary.SizeGargantuan).WithAlignment(bestiary.AlignmentLE).
			WithRarity(bestiary.RarityUnique).WithCombat(true, false, true).Build(),
		builders.NewCreatureBuilder(13).WithName("Hill Giant").WithLevel(7).WithHP(140).
			WithSize(bestiary.SizeHuge).WithAlignment(bestiary.AlignmentCE).Build(),
		builders.NewCreatureBuilder(14).WithName("Zombie Shambler").WithLevel(-1).WithHP(20).
			WithSize(bestiary.SizeMedium).WithAlignment(bestiary.AlignmentNE).Build(),
		builders.NewCreatureBuilder(15).WithName("Skeleton Guard").WithLevel(-1).WithHP(4).
			WithSize(bestiary.SizeMedium).WithAlignment(bestiary.AlignmentNE).Build(),
		builders.NewCreatureBuilder(16).WithName("Giant Rat").WithLevel(-1).WithHP(8).
			WithSize(bestiary.SizeSmall).WithAlignment(bestiary.AlignmentN).Build(),
	}
}
