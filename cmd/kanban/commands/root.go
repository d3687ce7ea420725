package commands

import (
	"fmt"

	"github.com/dyluth/kanban/internal/config"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
	redisURL   string
	profile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Kanban - a shared board document in Redis",
	Long: `Kanban keeps boards, columns and cards in a single JSON document stored
in Redis. Every command is an independent surface onto that document: it
loads it, repairs anything malformed, applies one change and saves the whole
document back. Concurrent edits are last-write-wins.

Use "kanban watch" in one terminal to see every change live.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to kanban.yml")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "", "Redis URL (overrides config and KANBAN_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Profile namespace (overrides config and KANBAN_PROFILE)")
}
