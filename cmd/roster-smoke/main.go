package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/lineup/internal/smoke"
	"github.com/spf13/cobra"
)

var config = smoke.Config{
	BaseURL:    smoke.DefaultBaseURL,
	Players:    smoke.DefaultPlayers,
	Attendance: smoke.DefaultAttendance,
	Defense:    smoke.DefaultDefense,
	Timeout:    smoke.DefaultTimeout,
}

var rootCmd = &cobra.Command{
	Use:   "roster-smoke",
	Short: "Smoke test a running lineup service",
	Long: `roster-smoke generates a random roster, imports it into a running lineup
service, asks for teams and checks that every attending player landed on
exactly one team with consistent skill totals.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import a random roster and verify the generated teams",
	Example: `  roster-smoke run
  roster-smoke run --players 60 --defense 0.4 --seed 7 --verbose
  roster-smoke run --url http://localhost:8080`,
	RunE: runSmoke,
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&config.BaseURL, "url", config.BaseURL, "base URL of the service")
	flags.IntVar(&config.Players, "players", config.Players, "number of roster rows to generate")
	flags.Float64Var(&config.Attendance, "attendance", config.Attendance, "share of rows marked attending")
	flags.Float64Var(&config.Defense, "defense", config.Defense, "share of rows marked defense")
	flags.DurationVar(&config.Timeout, "timeout", config.Timeout, "HTTP request timeout")
	flags.Int64Var(&config.Seed, "seed", 0, "generator seed (0 picks one from the clock)")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "print both lineups")

	rootCmd.AddCommand(runCmd)
}

func runSmoke(cmd *cobra.Command, _ []string) error {
	if err := smoke.SetupLogging(cmd.ErrOrStderr(), config.Verbose); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), smoke.DefaultRunTimeout)
	defer cancel()

	_, err := smoke.Run(ctx, &config)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
