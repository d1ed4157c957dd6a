package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chirper/internal/chirper"
	"chirper/internal/config"
	"chirper/internal/schedule"
	"chirper/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Chirp once a day at a random time in the configured window",
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		templates, closeDeps, err := buildResolver(ctx, cfg, creds)
		if err != nil {
			return err
		}
		defer closeDeps()

		w := &worker.DailyChirp{
			Chirper: &chirper.Chirper{
				Templates: templates,
				Notifier:  notifier,
				Recipient: cfg.Chirper.Recipient,
				Timeout:   timeout,
			},
			Scheduler: schedule.New(cfg.Chirper.EarliestHour, cfg.Chirper.LatestHour, cfg.CatchUp()),
		}

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return worker.NewManager(w).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
