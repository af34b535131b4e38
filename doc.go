// Package main provides the skillpack command-line interface.
//
// skillpack validates a skill directory's SKILL.md metadata and archives the
// directory into a distributable <name>.skill file, a deflate-compressed zip
// whose single top-level entry is the skill directory itself.
//
// Usage:
//
//	skillpack SKILL_DIR [OUTPUT_DIR]
//	skillpack validate SKILL_DIR
//	skillpack inspect ARCHIVE
package main
