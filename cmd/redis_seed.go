package cmd

import (
	"context"
	"fmt"
	"time"

	"chirper/internal/pool"
	"chirper/internal/redisclient"
	"chirper/internal/storage"

	"github.com/spf13/cobra"
)

// seedCmd copies a pool file into a Redis list usable as redis:<key>.
var seedCmd = &cobra.Command{
	Use:   "seed <key> <file>",
	Short: "Replace a Redis pool list with the entries of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		key, path := args[0], args[1]

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		items, err := pool.FileLoader{Dir: cfg.Chirper.DataDir}.Load(ctx, path)
		if err != nil {
			return err
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		if err := storage.NewRedisLists(rdb).Seed(ctx, key, items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d entries into %s:%s\n", len(items), storage.Scheme, key)
		return nil
	},
}

func init() {
	redisCmd.AddCommand(seedCmd)
}
