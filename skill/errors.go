package skill

import "github.com/pkg/errors"

// Sentinel errors for package skill.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Source directory errors
	ErrSkillFileNotFound = errors.New("SKILL.md not found")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Frontmatter errors
	ErrMissingFrontmatter = errors.New("SKILL.md missing YAML frontmatter (must start with '---')")
	ErrInvalidFrontmatter = errors.New("invalid YAML frontmatter format")
	ErrInvalidYAML        = errors.New("invalid YAML in frontmatter")
	ErrEmptyFrontmatter   = errors.New("empty YAML frontmatter")
	ErrMissingField       = errors.New("missing required field")

	// Archive errors
	ErrEmptyName         = errors.New("declared name is empty")
	ErrNotSkillExtension = errors.New("file path extension is not '.skill'")
)
