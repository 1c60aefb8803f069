package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uditisharmaaa/portfolio/internal/web"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the page routing table",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tVIEW")
		for _, r := range web.PageRoutes() {
			fmt.Fprintf(w, "GET\t%s%s\t%s\n", cfg.BasePath, r.Path, r.View)
		}
		fmt.Fprintf(w, "GET\t%s\t%s\n", "*", web.ViewNotFound)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
