package cmd

import (
	"fmt"
	"io"

	"github.com/iksnae/asc/internal"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status information",
		Long: `Print whether asc is operational. With --verbose the version and an
overview of the active configuration and page cache are shown as well.

status never fails, so it can be used as a smoke test.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"config": configOptional},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ASC Status: Running")
			if !a.verbose {
				return nil
			}

			fmt.Fprintf(out, "Version: %s\n", version)
			fmt.Fprintln(out, "All systems operational.")
			fmt.Fprintln(out)
			printOverview(out, a.cfg)
			return nil
		},
	}
}

// printOverview shows where asc will fetch from and write to
func printOverview(out io.Writer, cfg *internal.Config) {
	if cfg == nil {
		cfg = internal.DefaultConfig()
	}

	fmt.Fprintln(out, sectionStyle.Render("Configuration"))
	fmt.Fprintf(out, "   Archive: %s\n", cfg.Archive.BaseURL)
	fmt.Fprintf(out, "   Summary: %s (%s)\n", cfg.Summary.BaseURL, cfg.Summary.Model)
	fmt.Fprintf(out, "   Speech: %s (%s)\n", cfg.Speech.Engine, cfg.Speech.Model)
	fmt.Fprintf(out, "   Defaults: %d hours, %s, output %s\n", cfg.Fetch.Hours, cfg.Fetch.Timezone, cfg.Fetch.OutputType)
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Page cache"))
	switch {
	case !cfg.Cache.Enabled:
		fmt.Fprintln(out, warningStyle.Render("   Disabled"))
	case internal.PageCacheExists(cfg.Cache.Dir):
		fmt.Fprintln(out, successStyle.Render("   Available"))
		fmt.Fprintln(out, infoStyle.Render("   "+cfg.Cache.Dir))
	default:
		fmt.Fprintln(out, infoStyle.Render("   Empty, created on first fetch"))
		fmt.Fprintln(out, infoStyle.Render("   "+cfg.Cache.Dir))
	}
}
