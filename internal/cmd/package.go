package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dendrascience/skillpack/skill"
	"github.com/spf13/cobra"
)

// NewPackageCmd creates the packaging command used as the CLI root.
func NewPackageCmd(a *app) *cobra.Command {
	var (
		excludes []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "package SKILL_DIR [OUTPUT_DIR]",
		Short: "Package a skill directory into a .skill file",
		Long: `Package a skill directory into a distributable .skill file.

SKILL_DIR must contain a SKILL.md file whose YAML frontmatter declares at
least a name and a description. The archive is written to
OUTPUT_DIR/<name>.skill (default: the current directory) and holds every
file under SKILL_DIR, rooted at the directory's own name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, a, args, excludes, dryRun)
		},
	}

	cmd.Flags().StringArrayVarP(&excludes, "exclude", "x", nil, "Glob pattern of files to leave out, relative to SKILL_DIR (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would be packaged without writing the archive")

	return cmd
}

func runPackage(cmd *cobra.Command, a *app, args []string, excludes []string, dryRun bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	skillDir := args[0]

	if !checkSkillDir(errOut, skillDir) {
		return fail(cmd)
	}
	if err := a.setup(cmd); err != nil {
		return err
	}

	outputDir, err := resolveOutputDir(args, a.cfg)
	if err != nil {
		fmt.Fprintf(errOut, "❌ Error: %v\n", err)
		return fail(cmd)
	}
	if !cmd.Flags().Changed("exclude") {
		excludes = a.cfg.Exclude
	}

	fmt.Fprintf(out, "📦 Packaging skill: %s\n", skillDir)
	fmt.Fprintf(out, "   Output directory: %s\n\n", outputDir)

	fmt.Fprintln(out, "🔍 Validating skill...")
	s, err := skill.Load(skillDir)
	if err != nil {
		fmt.Fprintf(errOut, "❌ Error: %s\n", skill.Diagnostic(err))
		return fail(cmd)
	}
	fmt.Fprint(out, "✅ Skill is valid!\n\n")

	opts := []skill.Option{
		skill.WithExcludes(excludes...),
		skill.WithLogger(a.logger),
	}

	if dryRun {
		return runDryRun(cmd, s, outputDir, opts)
	}

	start := time.Now()
	path, err := skill.Package(s, outputDir, append(opts, skill.WithProgress(out))...)
	if err != nil {
		fmt.Fprintf(errOut, "\n❌ Error packaging skill: %v\n", err)
		return fail(cmd)
	}
	a.logger.Info("packaged skill", "name", s.Name(), "path", path, "elapsed", time.Since(start))

	fmt.Fprintf(out, "\n✅ Successfully packaged skill to: %s\n", path)
	return nil
}

func runDryRun(cmd *cobra.Command, s *skill.Skill, outputDir string, opts []skill.Option) error {
	out := cmd.OutOrStdout()
	entries, err := skill.Files(s, outputDir, opts...)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n❌ Error packaging skill: %v\n", err)
		return fail(cmd)
	}
	for _, e := range entries {
		fmt.Fprintf(out, "  Would add: %s\n", e.Name)
	}
	fmt.Fprintf(out, "\nDry run: %d file(s) would be packaged to: %s\n", len(entries), skill.OutputPath(s, outputDir))
	return nil
}

// checkSkillDir prints a diagnostic and returns false unless path is an
// existing directory.
func checkSkillDir(w io.Writer, path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "❌ Error: Skill directory not found: %s\n", path)
		return false
	}
	if err != nil {
		fmt.Fprintf(w, "❌ Error: %v\n", err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "❌ Error: Not a directory: %s\n", path)
		return false
	}
	return true
}
