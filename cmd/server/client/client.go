// Package client provides commands that call a running encounter server
package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the encounter server",
	Long:  `Client commands make real gRPC requests against a running encounter server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Encounter commands
	ClientCmd.AddCommand(encounterInfoCmd)
	ClientCmd.AddCommand(generateEncounterCmd)

	// Bestiary commands
	ClientCmd.AddCommand(listCreaturesCmd)
	ClientCmd.AddCommand(getCreatureCmd)
	ClientCmd.AddCommand(filterValuesCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createEncounterClient creates an encounter service client
func createEncounterClient() (v1alpha1.EncounterServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewEncounterServiceClient(conn), cleanup, nil
}

// createBestiaryClient creates a bestiary service client
func createBestiaryClient() (v1alpha1.BestiaryServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewBestiaryServiceClient(conn), cleanup, nil
}

// parseFilterFlags turns repeated DIMENSION=v1,v2 flags into request filters
func parseFilterFlags(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	out := make(map[string][]string, len(flags))
	for _, f := range flags {
		dim, values, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(dim) == "" {
			return nil, errors.InvalidArgumentf("filter %q must look like DIMENSION=value[,value]", f)
		}
		key := strings.ToUpper(strings.TrimSpace(dim))
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out[key] = append(out[key], v)
			}
		}
	}
	return out, nil
}

// describeError unpacks the error code and metadata carried by a status
func describeError(action string, err error) error {
	converted := errors.FromGRPCError(err)
	meta := errors.GetMeta(converted)
	if len(meta) == 0 {
		return fmt.Errorf("failed to %s: %w", action, converted)
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return fmt.Errorf("failed to %s: %w (%s)", action, converted, strings.Join(details, ", "))
}

func printCreature(c *v1alpha1.Creature) {
	fmt.Printf("  #%-5d %-28s level %-3d hp %-4d %s %s %s\n",
		c.ID, c.Name, c.Level, c.HP, c.Size, c.Alignment, c.Rarity)
	if c.Variant != "" {
		fmt.Printf("         variant: %s\n", c.Variant)
	}
	if c.Family != "" && c.Family != "-" {
		fmt.Printf("         family: %s\n", c.Family)
	}
}

func printThresholds(thresholds map[string]int) {
	names := make([]string, 0, len(thresholds))
	for name := range thresholds {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return thresholds[names[i]] < thresholds[names[j]] })

	for _, name := range names {
		fmt.Printf("  %-10s %d\n", name, thresholds[name])
	}
}
