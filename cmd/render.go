package cmd

import (
	"context"
	"fmt"
	"time"

	"chirper/internal/config"

	"github.com/spf13/cobra"
)

var renderCount int

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print rendered messages without sending them",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.ValidateTemplates(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if renderCount < 1 {
			renderCount = 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(renderCount)*30*time.Second)
		defer cancel()

		templates, closeDeps, err := buildResolver(ctx, cfg, config.CredentialsFromEnv())
		if err != nil {
			return err
		}
		defer closeDeps()

		for i := 0; i < renderCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), templates.Render(ctx))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVarP(&renderCount, "count", "n", 5, "number of messages to render")
	rootCmd.AddCommand(renderCmd)
}
