package cmd

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd(t *testing.T) {
	dir := newDemoSkill(t)

	res := execute(t, "validate", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "🔍 Validating skill...")
	assert.Contains(t, res.stdout, "✅ Skill is valid!")
	assert.Contains(t, res.stdout, "   Name: demo\n")
	assert.Contains(t, res.stdout, "   Description: A demo skill\n")
}

func TestValidateCmd_RepeatedKeys(t *testing.T) {
	dir := t.TempDir()
	content := "---\nname: first\ndescription: a\nname: second\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))

	res := execute(t, "validate", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "   Name: second\n")
}

func TestValidateCmd_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("# no frontmatter\n"), 0o644))

	res := execute(t, "validate", dir)
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "❌ Error: SKILL.md missing YAML frontmatter (must start with '---')")
	assert.NotContains(t, res.stdout, "✅")
}

func TestValidateCmd_NotADirectory(t *testing.T) {
	res := execute(t, "validate", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "Skill directory not found")
}

func TestInspectCmd(t *testing.T) {
	dir := newDemoSkill(t)
	out := t.TempDir()
	require.NoError(t, execute(t, dir, out).err)

	archive := filepath.Join(out, "demo.skill")
	res := execute(t, "inspect", archive)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "demo/sub/b.txt")
	assert.Contains(t, res.stdout, "is a valid skill package (demo, 3 file(s))")

	res = execute(t, "inspect", "--quiet", archive)
	require.NoError(t, res.err, res.stderr)
	assert.NotContains(t, res.stdout, "NAME")
}

func TestInspectCmd_Problems(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "demo.skill")
	f, err := os.Create(archive)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("demo/a.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("alpha"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	res := execute(t, "inspect", archive)
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "has 1 problem(s)")
	assert.Contains(t, res.stderr, "  - Missing demo/SKILL.md")
}

func TestInspectCmd_WrongExtension(t *testing.T) {
	res := execute(t, "inspect", filepath.Join(t.TempDir(), "demo.zip"))
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "file path extension is not '.skill'")
}
