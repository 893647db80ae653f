package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/newsfront/internal/news"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List news items from the index",
	Long:  `Prints the news index filtered by category and truncated to a limit, in index order (newest first).`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "only items of this category (exact match)")
	listCmd.Flags().IntP("limit", "n", 0, "at most this many items (0 for all)")
	listCmd.Flags().Bool("json", false, "print JSON instead of a table")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	idx, err := news.Load(cmd.Context(), newSource(cfg), cfg.Paths.Index)
	if err != nil {
		return err
	}
	items := idx.Filter(category).Limit(limit)

	out := cmd.OutOrStdout()
	if asJSON {
		if items == nil {
			items = news.Index{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No news items found.")
		return nil
	}
	return renderTable(out, []string{"ID", "Date", "Category", "Title"}, listRows(items))
}

func listRows(items news.Index) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.ID, it.Date, it.Category, it.Title})
	}
	return rows
}
