package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/asc/internal"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func newCacheCmd(a *app) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the archive page cache",
		Long: `Archive pages of past days never change, so fetch keeps them in a local
SQLite database and only downloads today's page again.`,
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached archive pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !internal.PageCacheExists(a.cfg.Cache.Dir) {
				fmt.Fprintln(out, headerStyle.Render("No cached pages"))
				return nil
			}
			cache, err := internal.OpenPageCache(a.cfg.Cache.Dir)
			if err != nil {
				return err
			}
			defer cache.Close()

			pages, err := cache.List()
			if err != nil {
				return err
			}
			displayPages(out, pages)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached archive pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !internal.PageCacheExists(a.cfg.Cache.Dir) {
				internal.PrintInfo(out, "Cache is already empty")
				return nil
			}
			cache, err := internal.OpenPageCache(a.cfg.Cache.Dir)
			if err != nil {
				return err
			}
			defer cache.Close()

			n, err := cache.Clear()
			if err != nil {
				return err
			}
			internal.PrintSuccess(out, fmt.Sprintf("Removed %d cached page(s)", n))
			return nil
		},
	})

	return cacheCmd
}

func displayPages(out io.Writer, pages []internal.CachedPage) {
	if len(pages) == 0 {
		fmt.Fprintln(out, headerStyle.Render("No cached pages"))
		return
	}

	var total uint64
	for _, p := range pages {
		total += uint64(p.Size)
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d cached page(s), %s", len(pages), humanize.Bytes(total))))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Channel")+"\t"+titleStyle.Render("Day")+"\t"+titleStyle.Render("Size")+"\t"+titleStyle.Render("Fetched")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 70))
	for _, p := range pages {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			p.Channel,
			p.Day.Format("2006-01-02"),
			humanize.Bytes(uint64(p.Size)),
			dateStyle.Render(humanize.Time(p.FetchedAt)),
		)
	}
	_ = w.Flush()
}
