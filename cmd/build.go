package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsfront/internal/progress"
	"github.com/ziadkadry99/newsfront/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render every page shell into the output directory",
	Long: `Walks the site directory, renders every page shell (fragments, navigation,
news cards), pre-renders articles whose index link is a plain path and
copies all other files to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	buildCmd.Flags().BoolP("quiet", "q", false, "no progress output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	pipeline := newPipeline(cfg, newSource(cfg))
	gen := site.NewGenerator(cfg, pipeline, progress.NewReporter(quiet), logger)

	sum, err := gen.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d articles, copied %d files (%s) to %s in %s\n",
		sum.Pages, sum.Articles, sum.Copied, humanize.Bytes(uint64(sum.Bytes)), cfg.OutputDir,
		time.Since(start).Round(time.Millisecond))
	if sum.Dynamic > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d articles are linked through %s and render in the browser\n", sum.Dynamic, cfg.Paths.DetailPage)
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d articles failed to render", sum.Failed)
	}
	return nil
}
