package cmd

import (
	"context"
	"fmt"
	"time"

	"chirper/internal/chirper"
	"chirper/internal/config"

	"github.com/spf13/cobra"
)

var chirpCmd = &cobra.Command{
	Use:   "chirp",
	Short: "Render and send one message now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		creds := config.CredentialsFromEnv()
		notifier, err := chirper.NewNotifier(cfg, creds, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		timeout, err := cfg.SendTimeout()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout+30*time.Second)
		defer cancel()

		templates, closeDeps, err := buildResolver(ctx, cfg, creds)
		if err != nil {
			return err
		}
		defer closeDeps()

		c := &chirper.Chirper{Templates: templates, Notifier: notifier, Recipient: cfg.Chirper.Recipient, Timeout: timeout}
		if err := c.Chirp(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chirped %s\n", cfg.Chirper.Recipient)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chirpCmd)
}
