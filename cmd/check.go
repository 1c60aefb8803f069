package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uditisharmaaa/portfolio/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content directory",
	Long:  "check loads site.yaml and every post the way serve does and reports what it found.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := content.Load(contentFS(cfg.ContentDir))
		if err != nil {
			return fmt.Errorf("content is invalid: %w", err)
		}

		source := cfg.ContentDir
		if source == "" {
			source = "(built-in)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "content: %s\n", source)
		fmt.Fprintf(out, "posts: %d\n", len(store.Posts()))
		for _, p := range store.Posts() {
			fmt.Fprintf(out, "  %s  %s\n", p.ID, p.Title)
		}
		fmt.Fprintf(out, "projects: %d\n", len(store.Projects()))
		fmt.Fprintf(out, "categories: %v\n", store.Categories())
		fmt.Fprintf(out, "skills: %d\n", len(store.Skills()))
		fmt.Fprintf(out, "experiences: %d\n", len(store.Experiences()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
