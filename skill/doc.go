// Package skill validates and packages skill directories.
//
// A skill directory holds a SKILL.md file whose YAML frontmatter declares at
// least a name and a description, plus any number of supporting files. This
// package provides:
//
// Metadata:
//   - Load and ParseFrontmatter read the block between the first two '---'
//     delimiters of SKILL.md into a Metadata map
//   - Validate reports the first problem found as a single diagnostic line
//
// Packaging:
//   - Package writes every regular file of the directory into a deflate
//     compressed zip named <name>.skill, rooted at the directory's basename
//   - PackageDir does the same starting from a bare directory path
//
// Inspection:
//   - Inspect reads a .skill archive back and checks that it holds a single
//     skill directory with valid metadata
package skill
