package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
)

// Rebuilds every category index from the stored creature records. Use it
// after editing records by hand or when filter results look stale.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for category index keys...")

	iter := client.Scan(ctx, 0, "idx:*", 0).Iterator()
	var indexKeys []string
	for iter.Next(ctx) {
		indexKeys = append(indexKeys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	repo, err := creaturerepo.NewRedis(&creaturerepo.RedisConfig{Client: client})
	if err != nil {
		log.Fatal("Failed to create repository:", err)
	}

	out, err := repo.ListAll(ctx, &creaturerepo.ListAllInput{KeyPattern: creaturerepo.KeyPattern})
	if err != nil {
		log.Fatal("Failed to read creatures:", err)
	}

	fmt.Printf("\nFound %d index keys and %d creatures (%d undecodable records skipped)\n",
		len(indexKeys), len(out.Creatures), out.Skipped)

	fmt.Print("\nDo you want to DROP the indexes and rebuild them? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)
	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range indexKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			log.Fatalf("Failed to delete %s: %v", key, err)
		}
	}

	var failed int
	for _, c := range out.Creatures {
		if _, err := repo.Put(ctx, &creaturerepo.PutInput{Creature: c}); err != nil {
			fmt.Printf("✗ Failed to reindex creature %d (%s): %v\n", c.ID, c.Name, err)
			failed++
		}
	}

	fmt.Printf("\nReindexed %d creatures, %d failed\n", len(out.Creatures)-failed, failed)
}
