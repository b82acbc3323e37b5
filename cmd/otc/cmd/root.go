package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	sessionPath string
	trackName   string

	// Loaded by the root command before any subcommand runs.
	cfg    = DefaultConfig()
	logger = log.New(os.Stderr, "otc: ", 0)
)

var rootCmd = &cobra.Command{
	Use:   "otc",
	Short: "OpenTraceCurve - curve and point tools for tracked image data",
	Long: `OpenTraceCurve (otc) works with point tracks recorded over image frames:
  - map track points between data and screen space for a saved view
  - hit-test screen positions against a track
  - smooth or filter tracks with drift verification
  - view and edit tracks interactively

Examples:
  otc transform tracks.trk --session view.sexp   # Print screen positions
  otc pick tracks.trk 412 230 --session view.sexp
  otc smooth tracks.trk --window 5 --out smoothed.trk
  otc view tracks.trk                             # Launch viewer`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c := DefaultConfig()
		if configPath != "" {
			loaded, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c = loaded
		}
		if verbose {
			c.Verbose = true
		}
		cfg = c
		logger.SetOutput(cmd.ErrOrStderr())
		if cfg.Verbose {
			logger.Printf("config: cache=%d threshold=%gpx window=%d history=%d",
				cfg.CacheCapacity, cfg.Threshold, cfg.SmoothWindow, cfg.HistoryDepth)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVarP(&sessionPath, "session", "s", "", "view session file (default: fit the track)")
	rootCmd.PersistentFlags().StringVarP(&trackName, "track", "t", "", "track name (default: first track in the file)")
}
