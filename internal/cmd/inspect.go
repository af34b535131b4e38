package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/skillpack/skill"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates and returns the inspect subcommand for the skillpack CLI.
// It lists the contents of a .skill archive and checks its consistency.
func NewInspectCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "List and check the contents of a .skill archive",
		Long: `Inspect a packaged .skill archive.

Lists every entry with its sizes, then checks that the archive holds a single
top-level directory containing a valid SKILL.md whose declared name matches
the archive file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, a, args[0], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report problems, do not list entries")

	return cmd
}

func runInspect(cmd *cobra.Command, a *app, path string, quiet bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if err := a.setup(cmd); err != nil {
		return err
	}

	report, err := skill.Inspect(path)
	if err != nil {
		fmt.Fprintf(errOut, "❌ Error: %v\n", err)
		return fail(cmd)
	}
	a.logger.Debug("inspected archive", "path", path, "entries", len(report.Entries))

	if !quiet {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED")
		for _, e := range report.Entries {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.UncompressedSize, e.CompressedSize)
		}
		tw.Flush()
		fmt.Fprintln(out)
	}

	if !report.Valid() {
		fmt.Fprintf(errOut, "Archive %s has %d problem(s):\n", path, len(report.Problems))
		for _, p := range report.Problems {
			fmt.Fprintf(errOut, "  - %s\n", p)
		}
		return fail(cmd)
	}

	fmt.Fprintf(out, "✅ %s is a valid skill package (%s, %d file(s))\n", path, report.Metadata.Name(), len(report.Entries))
	return nil
}
