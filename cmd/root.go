package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	verbose  bool
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
)

var rootCmd = &cobra.Command{
	Use:   "newsfront",
	Short: "Render the news pages of a static corporate site",
	Long: `newsfront fills the page shells of a static news site: it injects the
shared header and footer, highlights the current navigation entry, renders
news cards from the JSON index and turns Markdown articles into the detail
page with previous/next links.

Example usage:
  newsfront build              # Render the site into dist/
  newsfront serve --watch      # Render per request with live reload
  newsfront check              # Validate the news index and articles
  newsfront list -c sjcaa      # List the SJCAA news`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".newsfront.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initRuntime loads .env and installs the default logger. The level is
// refined once the config file is read.
func initRuntime() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(logger)
	return nil
}
