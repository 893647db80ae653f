package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsfront/internal/config"
	"github.com/ziadkadry99/newsfront/internal/markdown"
	"github.com/ziadkadry99/newsfront/internal/news"
	"github.com/ziadkadry99/newsfront/internal/site"
	"github.com/ziadkadry99/newsfront/internal/source"
	"github.com/ziadkadry99/newsfront/internal/walker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the news index and its articles",
	Long: `Checks the news index for duplicate ids, malformed or out-of-order dates
and empty fields, then fetches every article to verify it exists and that
its front-matter is valid YAML. Markdown files under the content glob that
no index entry references are reported too. Exits non-zero on any problem.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// finding is one problem reported by check.
type finding struct {
	Where   string
	Problem string
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	findings, checked, err := checkSite(cmd.Context(), cfg, newSource(cfg))
	if err != nil {
		return err
	}
	return reportFindings(cmd.OutOrStdout(), findings, checked)
}

// checkSite returns the problems of the index and its articles along with
// the number of index entries checked.
func checkSite(ctx context.Context, cfg *config.Config, src source.Source) ([]finding, int, error) {
	idx, err := news.Load(ctx, src, cfg.Paths.Index)
	if err != nil {
		return nil, 0, err
	}

	var findings []finding
	for _, p := range idx.Validate() {
		findings = append(findings, finding{Where: fmt.Sprintf("#%d %s", p.Position, p.ID), Problem: p.Message})
	}

	referenced := make(map[string]bool, len(idx))
	for i, item := range idx {
		if item.MarkdownPath == "" {
			continue
		}
		mdPath := source.Resolve(articlePage(cfg, item), item.MarkdownPath)
		referenced[strings.TrimPrefix(source.Clean(mdPath), "/")] = true

		where := fmt.Sprintf("#%d %s", i, item.ID)
		data, err := src.Fetch(ctx, mdPath)
		if err != nil {
			findings = append(findings, finding{Where: where, Problem: fmt.Sprintf("article %s: %v", item.MarkdownPath, err)})
			continue
		}
		if _, err := markdown.ParseFrontMatter(data); err != nil {
			findings = append(findings, finding{Where: where, Problem: fmt.Sprintf("front-matter of %s: %v", item.MarkdownPath, err)})
		}
	}

	// Orphans can only be found in a local site directory.
	if cfg.Source.BaseURL == "" && cfg.ContentGlob != "" {
		files, err := walker.Glob(cfg.SiteDir, cfg.ContentGlob)
		if err != nil {
			return nil, 0, err
		}
		for _, f := range files {
			if !referenced[f] {
				findings = append(findings, finding{Where: "/" + f, Problem: "not referenced by the news index"})
			}
		}
	}

	return findings, len(idx), nil
}

// articlePage is the path an article is rendered at: its own link when
// that is a plain path, the detail page otherwise. Relative markdown paths
// resolve against it.
func articlePage(cfg *config.Config, item news.Item) string {
	if rel, ok := site.StaticPath(item.Link); ok {
		return "/" + rel
	}
	return cfg.Paths.DetailPage
}

func reportFindings(w io.Writer, findings []finding, checked int) error {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s %d news items checked, no problems found\n", color.GreenString("✓"), checked)
		return nil
	}

	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Where, color.RedString(f.Problem)})
	}
	if err := renderTable(w, []string{"Where", "Problem"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %d problems in %d news items\n", color.RedString("✗"), len(findings), checked)
	return fmt.Errorf("check found %d problems", len(findings))
}
