package cmd

import "github.com/spf13/cobra"

// redisCmd groups commands for pools stored in Redis lists.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis pool storage utilities",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
