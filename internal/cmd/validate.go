package cmd

import (
	"fmt"

	"github.com/dendrascience/skillpack/skill"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the skillpack CLI.
// It checks a skill directory's metadata without writing an archive.
func NewValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate SKILL_DIR",
		Short: "Validate a skill directory without packaging it",
		Long: `Validate the SKILL.md file of a skill directory.

The file must start with a YAML frontmatter block delimited by '---' lines
that declares both a name and a description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, a *app, skillDir string) error {
	out := cmd.OutOrStdout()

	if !checkSkillDir(cmd.ErrOrStderr(), skillDir) {
		return fail(cmd)
	}
	if err := a.setup(cmd); err != nil {
		return err
	}

	fmt.Fprintln(out, "🔍 Validating skill...")
	a.logger.Debug("validating", "dir", skillDir)
	meta, ok := skill.Validate(cmd.ErrOrStderr(), skillDir)
	if !ok {
		return fail(cmd)
	}
	fmt.Fprintln(out, "✅ Skill is valid!")
	fmt.Fprintf(out, "   Name: %s\n", meta.Name())
	fmt.Fprintf(out, "   Description: %s\n", meta.Description())
	return nil
}
