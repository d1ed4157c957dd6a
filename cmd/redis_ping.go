package cmd

import (
	"context"
	"fmt"
	"time"

	"chirper/internal/redisclient"
	"chirper/internal/storage"

	"github.com/spf13/cobra"
)

// pingCmd pings the configured Redis server and lists stored pools.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and list stored pools",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)

		sizes, err := storage.NewRedisLists(rdb).Sizes(ctx)
		if err != nil {
			return err
		}
		for _, s := range sizes {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\t%d\n", storage.Scheme, s.Key, s.Len)
		}
		return nil
	},
}

func init() {
	redisCmd.AddCommand(pingCmd)
}
