package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoSkill = "---\nname: demo\ndescription: A demo skill\n---\n# Demo\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command from an empty working directory so no
// .skillpack.yaml or SKILLPACK_* variable leaks into the test.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{"SKILLPACK_OUTPUT_DIR", "SKILLPACK_EXCLUDE", "SKILLPACK_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return run(t, args...)
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func newDemoSkill(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(demoSkill), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("bravo"), 0o644))
	return dir
}

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestPackage_Success(t *testing.T) {
	dir := newDemoSkill(t)
	out := filepath.Join(t.TempDir(), "out")

	res := execute(t, dir, out)
	require.NoError(t, res.err, res.stderr)

	archive := filepath.Join(out, "demo.skill")
	assert.Equal(t, []string{"demo/SKILL.md", "demo/a.txt", "demo/sub/b.txt"}, entryNames(t, archive))

	assert.Contains(t, res.stdout, "📦 Packaging skill: "+dir)
	assert.Contains(t, res.stdout, "   Output directory: "+out)
	assert.Contains(t, res.stdout, "✅ Skill is valid!")
	assert.Contains(t, res.stdout, "  Added: demo/sub/b.txt\n")
	assert.Contains(t, res.stdout, "✅ Successfully packaged skill to: "+archive)
	assert.Empty(t, res.stderr)
}

func TestPackage_DefaultsToWorkingDirectory(t *testing.T) {
	dir := newDemoSkill(t)

	res := execute(t, dir)
	require.NoError(t, res.err, res.stderr)

	wd, err := os.Getwd()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(wd, "demo.skill"))
	assert.NoError(t, err)
}

func TestPackage_OutputDirFromEnv(t *testing.T) {
	dir := newDemoSkill(t)
	out := filepath.Join(t.TempDir(), "from-env")

	t.Chdir(t.TempDir())
	t.Setenv("SKILLPACK_OUTPUT_DIR", out)

	res := run(t, dir)
	require.NoError(t, res.err, res.stderr)
	_, err := os.Stat(filepath.Join(out, "demo.skill"))
	assert.NoError(t, err)
}

func TestPackage_ConfigFile(t *testing.T) {
	dir := newDemoSkill(t)
	out := filepath.Join(t.TempDir(), "from-config")

	cfgDir := t.TempDir()
	cfg := "output_dir: " + out + "\nexclude:\n  - sub/**\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, ".skillpack.yaml"), []byte(cfg), 0o644))
	t.Chdir(cfgDir)

	res := run(t, dir)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, []string{"demo/SKILL.md", "demo/a.txt"}, entryNames(t, filepath.Join(out, "demo.skill")))
}

func TestPackage_ExplicitConfigFileMissing(t *testing.T) {
	dir := newDemoSkill(t)

	res := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), dir)
	assert.Error(t, res.err)
	assert.Equal(t, 1, exitCode(res.err))
}

func TestPackage_ExcludeFlag(t *testing.T) {
	dir := newDemoSkill(t)
	out := t.TempDir()

	res := execute(t, dir, out, "--exclude", "*.txt")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, []string{"demo/SKILL.md", "demo/sub/b.txt"}, entryNames(t, filepath.Join(out, "demo.skill")))
}

func TestPackage_DryRun(t *testing.T) {
	dir := newDemoSkill(t)
	out := filepath.Join(t.TempDir(), "out")

	res := execute(t, dir, out, "--dry-run")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "  Would add: demo/a.txt\n")
	assert.Contains(t, res.stdout, "Dry run: 3 file(s) would be packaged to: "+filepath.Join(out, "demo.skill"))

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")
}

func TestPackage_Failures(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	noMeta := t.TempDir()

	badMeta := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(badMeta, "SKILL.md"), []byte("---\nname: x\n---\n"), 0o644))

	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name       string
		dir        string
		wantStderr string
	}{
		{
			name:       "source does not exist",
			dir:        missing,
			wantStderr: "❌ Error: Skill directory not found: " + missing,
		},
		{
			name:       "source is a file",
			dir:        file,
			wantStderr: "❌ Error: Not a directory: " + file,
		},
		{
			name:       "no SKILL.md",
			dir:        noMeta,
			wantStderr: "❌ Error: SKILL.md not found in " + noMeta,
		},
		{
			name:       "missing description",
			dir:        badMeta,
			wantStderr: "❌ Error: Missing required field: description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out")

			res := execute(t, tt.dir, out)
			assert.Equal(t, 1, exitCode(res.err))
			assert.Contains(t, res.stderr, tt.wantStderr)

			_, err := os.Stat(out)
			assert.True(t, os.IsNotExist(err), "no archive may be written on failure")
		})
	}
}

func TestPackage_WriteFailure(t *testing.T) {
	dir := newDemoSkill(t)

	// a file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	res := execute(t, dir, filepath.Join(blocker, "out"))
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "❌ Error packaging skill: ")
}

func TestPackage_ArgCount(t *testing.T) {
	res := execute(t)
	assert.Error(t, res.err)

	res = execute(t, "a", "b", "c")
	assert.Error(t, res.err)
}

func TestPackage_InvalidLogLevel(t *testing.T) {
	dir := newDemoSkill(t)

	res := execute(t, "--log-level", "loud", dir, t.TempDir())
	assert.Error(t, res.err)
}

func TestPackage_DebugLogging(t *testing.T) {
	dir := newDemoSkill(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	res := execute(t, "--log-level", "debug", dir, t.TempDir())
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stderr, "configuration loaded")
	assert.Contains(t, res.stderr, "skipping non-regular file")
}

func TestPackage_DirNamedLikeSubcommand(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "validate")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(demoSkill), 0o644))
	out := t.TempDir()

	t.Chdir(base)
	for _, key := range []string{"SKILLPACK_OUTPUT_DIR", "SKILLPACK_EXCLUDE", "SKILLPACK_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	res := run(t, "./validate", out)
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, []string{"validate/SKILL.md"}, entryNames(t, filepath.Join(out, "demo.skill")))

	root := NewRootCmd()
	assert.Contains(t, root.Long, "skillpack ./validate")
}

func TestPackage_PathCheckedBeforeConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	res := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), missing)
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "❌ Error: Skill directory not found: "+missing)
	assert.NotContains(t, res.stderr, "failed to read config file")

	res = execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "validate", missing)
	assert.Equal(t, 1, exitCode(res.err))
	assert.Contains(t, res.stderr, "Skill directory not found")
	assert.NotContains(t, res.stderr, "failed to read config file")
}
