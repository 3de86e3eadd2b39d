package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const silentSource = `try:
    x()
except:
    pass
`

const cleanSource = `try:
    x()
except ValueError as e:
    logger.error(str(e))
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCommand executes the root command with the given args and
// returns the captured stdout and the exit code it would hand to
// os.Exit.
func runCommand(t *testing.T, args ...string) (string, int, error) {
	t.Helper()

	originalStdout := os.Stdout
	readPipe, writePipe, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = writePipe
	defer func() {
		os.Stdout = originalStdout
	}()

	exitCode := 0
	cmd := newRootCmd(&exitCode)
	cmd.SetArgs(args)
	runErr := cmd.Execute()
	require.NoError(t, writePipe.Close())

	var output bytes.Buffer
	_, err = output.ReadFrom(readPipe)
	require.NoError(t, err)

	return output.String(), exitCode, runErr
}

func TestRootCmd_FilesOnlyAndExitStatus(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.py", silentSource)
	writeFile(t, dir, "clean.py", cleanSource)

	out, exitCode, err := runCommand(t, dir, "--files-only")
	require.NoError(t, err)

	assert.Equal(t, bad+"\n", out, "exactly one line: the path of the only affected file")
	assert.Equal(t, 2, exitCode, "exit status must equal the total issue count across both files")
}

func TestRootCmd_ExitStatusPerOutputMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", silentSource)

	for _, mode := range [][]string{
		{},
		{"--json"},
		{"--files-only"},
		{"--parallel-fix"},
	} {
		t.Run("mode "+strings.Join(mode, " "), func(t *testing.T) {
			_, exitCode, err := runCommand(t, append([]string{dir}, mode...)...)
			require.NoError(t, err)
			assert.Equal(t, 2, exitCode)
		})
	}
}

func TestRootCmd_CleanRunExitsZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.py", cleanSource)

	out, exitCode, err := runCommand(t, dir)
	require.NoError(t, err)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, out, "No silent exception handling issues found")
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "skipdir/bad.py", silentSource)
	writeFile(t, dir, "other/bad.py", silentSource)

	configPath := writeFile(t, dir, "pysilent.json", `{"exclude_patterns": ["skipdir"], "show_snippets": true}`)

	// The config file's exclude list replaces the defaults and
	// --exclude appends to it, so nothing is left to analyze.
	out, exitCode, err := runCommand(t, dir, "--config", configPath, "--exclude", "other", "--files-only")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, exitCode)

	// --no-snippets wins over the config file's show_snippets; the
	// config still excludes skipdir, leaving other/bad.py's issues.
	out, exitCode, err = runCommand(t, dir, "--config", configPath, "--no-snippets")
	require.NoError(t, err)
	assert.Equal(t, 2, exitCode)
	assert.NotContains(t, out, "Code:")
}

func TestRootCmd_PathNotFound(t *testing.T) {
	_, exitCode, err := runCommand(t, filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
	assert.Equal(t, 0, exitCode, "no issue count is reported before analysis runs")
}
