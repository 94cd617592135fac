package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/journey2dayone/internal/dayone"
)

func writeEntry(t *testing.T, dir, id, text string, photos ...string) {
	t.Helper()
	quoted := make([]string, 0, len(photos))
	for _, p := range photos {
		quoted = append(quoted, fmt.Sprintf("%q", p))
	}
	doc := fmt.Sprintf(`{
  "id": %q,
  "date_journal": 1521476523432,
  "text": %q,
  "type": "html",
  "lat": 48.8566,
  "lon": 2.3522,
  "timezone": "Europe/Paris",
  "address": "",
  "tags": ["New York"],
  "photos": [%s]
}`, id, text, strings.Join(quoted, ", "))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(doc), 0644))
}

type scriptedRunner struct {
	fail  map[string]bool
	calls []dayone.Command
}

func (r *scriptedRunner) Run(_ context.Context, cmd dayone.Command) (dayone.Output, error) {
	r.calls = append(r.calls, cmd)
	if r.fail[cmd.Stdin] {
		return dayone.Output{ExitCode: 1, Stderr: "rejected"}, nil
	}
	return dayone.Output{Stdout: "Created new entry with uuid: ABCDEF0123456789"}, nil
}

func execute(t *testing.T, runner dayone.Runner, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand("test", runner)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Run("imports entries and writes report", func(t *testing.T) {
		src := t.TempDir()
		writeEntry(t, src, "a", "<p>First entry</p>")
		writeEntry(t, src, "b", "Second entry", "missing.jpg")
		writeEntry(t, src, "c", "")
		reportPath := filepath.Join(t.TempDir(), "report.json")
		runner := &scriptedRunner{}

		out, err := execute(t, runner, "Journey", src, "--no-log-file", "--report", reportPath)

		require.NoError(t, err)
		require.Len(t, runner.calls, 2)
		assert.Equal(t, "First entry", runner.calls[0].Stdin)
		assert.Contains(t, runner.calls[0].Args, `New\ York`)
		assert.Contains(t, out, "INFO :: [1/2] Entry added -> a -> ABCDEF0123456789: 2 words, 1 tags")
		assert.Contains(t, out, "SKIPPED ENTRIES: "+filepath.Join(src, "c.json"))
		assert.Contains(t, out, "2 succeeded, 0 failed, 1 skipped")
		assert.FileExists(t, reportPath)
	})

	t.Run("dry run never calls the runner", func(t *testing.T) {
		src := t.TempDir()
		writeEntry(t, src, "a", "Only entry")
		runner := &scriptedRunner{}

		out, err := execute(t, runner, "Journey", src, "--dry-run", "--no-log-file",
			"--report", filepath.Join(t.TempDir(), "r.json"))

		require.NoError(t, err)
		assert.Empty(t, runner.calls)
		assert.Contains(t, out, "Dry run, not executing: dayone2 -j Journey")
	})

	t.Run("environment enables dry run", func(t *testing.T) {
		t.Setenv("J2D_DRY_RUN", "true")
		src := t.TempDir()
		writeEntry(t, src, "a", "Only entry")
		runner := &scriptedRunner{}

		_, err := execute(t, runner, "Journey", src, "--no-log-file",
			"--report", filepath.Join(t.TempDir(), "r.json"))

		require.NoError(t, err)
		assert.Empty(t, runner.calls)
	})

	t.Run("ledger records failures", func(t *testing.T) {
		src := t.TempDir()
		writeEntry(t, src, "a", "good")
		writeEntry(t, src, "b", "bad")
		runner := &scriptedRunner{fail: map[string]bool{"bad": true}}
		dbPath := filepath.Join(t.TempDir(), "ledger.db")

		out, err := execute(t, runner, "Journey", src, "--no-log-file", "--db", dbPath,
			"--report", filepath.Join(t.TempDir(), "r.json"))

		require.NoError(t, err)
		assert.FileExists(t, dbPath)
		assert.Contains(t, out, "1 succeeded, 1 failed, 0 skipped")
		assert.Contains(t, out, "FAILED ENTRIES: "+filepath.Join(src, "b.json"))
		assert.Contains(t, out, "recorded in ledger")
		assert.Contains(t, out, "1 failed entries can be looked up")
	})

	t.Run("log file is written", func(t *testing.T) {
		src := t.TempDir()
		writeEntry(t, src, "a", "entry")
		logDir := t.TempDir()

		_, err := execute(t, &scriptedRunner{}, "Journey", src, "--log-dir", logDir,
			"--report", filepath.Join(t.TempDir(), "r.json"))

		require.NoError(t, err)
		files, err := filepath.Glob(filepath.Join(logDir, "j2d-*.log"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		data, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), "DEBUG")
	})

	t.Run("missing dayone binary aborts with a hint", func(t *testing.T) {
		src := t.TempDir()
		writeEntry(t, src, "a", "entry")

		_, err := execute(t, nil, "Journey", src, "--no-log-file",
			"--dayone-bin", filepath.Join(t.TempDir(), "dayone2"),
			"--report", filepath.Join(t.TempDir(), "r.json"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, dayone.ErrToolUnavailable))

		var printed bytes.Buffer
		PrintError(&printed, err)
		assert.Contains(t, printed.String(), "Error: import stopped after 0 of 1 entries")
		assert.Contains(t, printed.String(), "Hint: install the Day One CLI")
	})

	t.Run("invalid source directory", func(t *testing.T) {
		_, err := execute(t, nil, "Journey", filepath.Join(t.TempDir(), "nope"), "--no-log-file")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSource))
	})

	t.Run("requires two arguments", func(t *testing.T) {
		_, err := execute(t, nil, "Journey")
		assert.Error(t, err)
	})
}

func TestResolveSourceDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(file, []byte("zip"), 0644))

	got, err := ResolveSourceDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = ResolveSourceDir(file)
	assert.True(t, errors.Is(err, ErrInvalidSource))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/journal")

	assert.Equal(t, "/home/journal", ExpandHome("~"))
	assert.Equal(t, "/home/journal/export", ExpandHome("~/export"))
	assert.Equal(t, "~other/export", ExpandHome("~other/export"))
	assert.Equal(t, "/tmp/export", ExpandHome("/tmp/export"))
}
