package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blacktop/swtws/internal/swtws"
	"github.com/blacktop/swtws/internal/tweet"
	"github.com/carlmjohnson/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRunner(stdout io.Writer) *swtws.Runner {
	return swtws.NewRunner(stdout, tweet.Options{}, swtws.Defaults{})
}

func runWith(t *testing.T, factory runnerFactory, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(factory)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := execute(context.Background(), cmd)
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWith(t, plainRunner, args...)
}

func brokenConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "swtws"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swtws", "config.yaml"), []byte("interval: [oops"), 0o600))
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func writeTalk(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLegacyCount(t *testing.T) {
	path := writeTalk(t, "one\n\n---\n\ntwo\n\n---\n\nthree")
	stdout, stderr, err := run(t, "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "3\n", stdout)
	assert.Empty(t, stderr)
}

func TestCheckSubcommand(t *testing.T) {
	path := writeTalk(t, "Hello")
	stdout, _, err := run(t, "check", "--length", path)
	require.NoError(t, err)
	assert.Equal(t, "[12]\n\nHello #swtws\n", stdout)
}

func TestHelp(t *testing.T) {
	stdout, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Equal(t, swtws.Legacy.Usage(), stdout)

	stdout, _, err = run(t, "presentation", "-h")
	require.NoError(t, err)
	assert.Equal(t, swtws.PresentationCommand.Usage(), stdout)
}

func TestErrorReport(t *testing.T) {
	stdout, stderr, err := run(t, "check")
	require.Error(t, err)
	assert.Equal(t, 1, exitcode.Get(err))
	assert.Empty(t, stdout)

	lines := strings.SplitN(stderr, "\n", 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "ERROR: [CommandError] no input file", lines[0])
	assert.Equal(t, swtws.Divider, lines[1])
	assert.Equal(t, swtws.Check.Usage(), lines[2])
}

func TestIllegalOption(t *testing.T) {
	path := writeTalk(t, "Hello")
	_, stderr, err := run(t, "resolve-image", "--github", "tok", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "ERROR: [ParseError] illegal option: --github")
}

func TestMissingFile(t *testing.T) {
	_, stderr, err := run(t, filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.Contains(t, stderr, "[CommandError] no such file")
}

func TestCompletion(t *testing.T) {
	stdout, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "swtws")
}

func TestHelpSkipsBrokenConfig(t *testing.T) {
	brokenConfig(t)
	stdout, stderr, err := runWith(t, configuredRunner, "check", "--help")
	require.NoError(t, err)
	assert.Equal(t, swtws.Check.Usage(), stdout)
	assert.Empty(t, stderr)
}

func TestBrokenConfigReported(t *testing.T) {
	brokenConfig(t)
	path := writeTalk(t, "Hello")
	stdout, stderr, err := runWith(t, configuredRunner, "check", path)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "ERROR: [Error] failed to load config: parse "))
}

func TestConfigDefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "swtws"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swtws", "config.yaml"), []byte(`hashtag: "#tryswift"`), 0o600))
	t.Setenv("XDG_CONFIG_HOME", dir)

	stdout, _, err := runWith(t, configuredRunner, "check", writeTalk(t, "Hello"))
	require.NoError(t, err)
	assert.Equal(t, "Hello #tryswift\n", stdout)
}

func TestCobraErrorsReported(t *testing.T) {
	stdout, stderr, err := run(t, "completion", "tcsh")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, `ERROR: [Error] invalid argument "tcsh"`))
	assert.Contains(t, stderr, swtws.Divider)
	assert.Contains(t, stderr, "completion [bash|zsh|fish|powershell]")
}

func TestCommandErrorsReportedOnce(t *testing.T) {
	_, stderr, err := run(t, "check")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(stderr, "ERROR:"))
}
