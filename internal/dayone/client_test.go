package dayone

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

type fakeRunner struct {
	output Output
	err    error
	calls  []Command
}

func (f *fakeRunner) Run(_ context.Context, cmd Command) (Output, error) {
	f.calls = append(f.calls, cmd)
	return f.output, f.err
}

func sampleEntry() entities.NormalizedEntry {
	return entities.NormalizedEntry{
		ForeignID:       "1521476523432-3fd7ab8a1e4d1234",
		SourcePath:      "/export/1521476523432-3fd7ab8a1e4d1234.json",
		Text:            "Walked along the **river**.",
		Tags:            []string{"travel", `New\ York`},
		AttachmentPaths: []string{"/export/a.jpg", "/export/b.mov"},
		Coordinates:     &entities.Coordinates{Latitude: 48.8566, Longitude: -2.3522},
		Timestamp:       "2018-03-19 05:22:03 PM",
		TimezoneName:    "Europe/Paris",
	}
}

func TestBuildArgs(t *testing.T) {
	client := NewClient(Options{Journal: "Journey"})

	t.Run("full entry", func(t *testing.T) {
		args := client.BuildArgs(sampleEntry())
		assert.Equal(t, []string{
			"-j", "Journey",
			"-d", "2018-03-19 05:22:03 PM",
			"-z", "Europe/Paris",
			"-t", "travel", `New\ York`,
			"-p", "/export/a.jpg", "/export/b.mov",
			"--coordinate", "48.8566", "-2.3522",
			"--", "new",
		}, args)
	})

	t.Run("optional groups omitted", func(t *testing.T) {
		entry := sampleEntry()
		entry.Tags = nil
		entry.AttachmentPaths = nil
		entry.Coordinates = nil

		args := client.BuildArgs(entry)
		assert.Equal(t, []string{
			"-j", "Journey",
			"-d", "2018-03-19 05:22:03 PM",
			"-z", "Europe/Paris",
			"--", "new",
		}, args)
	})

	t.Run("zero coordinates are kept", func(t *testing.T) {
		entry := sampleEntry()
		entry.Coordinates = &entities.Coordinates{}
		assert.Contains(t, client.BuildArgs(entry), "--coordinate")
	})
}

func TestImport(t *testing.T) {
	t.Run("success parses entry id", func(t *testing.T) {
		runner := &fakeRunner{output: Output{Stdout: "Created new entry with uuid: CB17A357BED34F6D838410CA96C7D9D1\n"}}
		client := NewClient(Options{Journal: "Journey", Runner: runner})

		result, err := client.Import(context.Background(), sampleEntry())

		require.NoError(t, err)
		assert.Equal(t, "CB17A357BED34F6D838410CA96C7D9D1", result.EntryID)
		require.Len(t, runner.calls, 1)
		assert.Equal(t, DefaultBinary, runner.calls[0].Binary)
		assert.Equal(t, "Walked along the **river**.", runner.calls[0].Stdin)
	})

	t.Run("success without id", func(t *testing.T) {
		runner := &fakeRunner{output: Output{Stdout: "Created new entry"}}
		client := NewClient(Options{Journal: "Journey", Runner: runner})

		result, err := client.Import(context.Background(), sampleEntry())

		require.NoError(t, err)
		assert.Empty(t, result.EntryID)
	})

	t.Run("non-zero exit is an import error", func(t *testing.T) {
		runner := &fakeRunner{output: Output{ExitCode: 2, Stderr: "journal not found\n"}}
		client := NewClient(Options{Journal: "Missing", Runner: runner})

		_, err := client.Import(context.Background(), sampleEntry())

		var importErr *ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, 2, importErr.ExitCode)
		assert.Equal(t, "journal not found\n", importErr.Stderr)
		assert.False(t, errors.Is(err, ErrToolUnavailable))
	})

	t.Run("launch failure is marked unavailable", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exec: \"dayone2\": executable file not found in $PATH")}
		client := NewClient(Options{Journal: "Journey", Runner: runner})

		_, err := client.Import(context.Background(), sampleEntry())

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrToolUnavailable))
		assert.NotEmpty(t, errors.FlattenHints(err))
	})

	t.Run("dry run does not execute", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		runner := &fakeRunner{}
		client := NewClient(Options{
			Journal: "My Journal",
			Runner:  runner,
			DryRun:  true,
			Logger:  zap.New(core).Sugar(),
		})

		result, err := client.Import(context.Background(), sampleEntry())

		require.NoError(t, err)
		assert.Empty(t, result.EntryID)
		assert.Empty(t, runner.calls)
		require.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "-j 'My Journal'")
	})
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		stdout string
		want   string
	}{
		{"Created new entry with uuid: CB17A357BED34F6D838410CA96C7D9D1", "CB17A357BED34F6D838410CA96C7D9D1"},
		{"Created new entry with uuid: 0A1B2C\n\n", "0A1B2C"},
		{"Created new entry with uuid: cb17a357", "357"},
		{"Created new entry with uuid: cb17a35z", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stdout, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEntryID(tt.stdout))
		})
	}
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctx := context.Background()

	t.Run("stdin is passed and stdout captured", func(t *testing.T) {
		out, err := ExecRunner{}.Run(ctx, Command{
			Binary: "sh",
			Args:   []string{"-c", `read body; echo "got $body"; echo "Created new entry with uuid: ABCDEF0123"`},
			Stdin:  "hello\n",
		})

		require.NoError(t, err)
		assert.Zero(t, out.ExitCode)
		assert.Contains(t, out.Stdout, "got hello")
		assert.Equal(t, "ABCDEF0123", ParseEntryID(out.Stdout))
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		out, err := ExecRunner{}.Run(ctx, Command{
			Binary: "sh",
			Args:   []string{"-c", "echo boom >&2; exit 3"},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, out.ExitCode)
		assert.Equal(t, "boom\n", out.Stderr)
	})

	t.Run("missing binary fails to launch", func(t *testing.T) {
		client := NewClient(Options{
			Binary:  filepath.Join(t.TempDir(), "dayone2"),
			Journal: "Journey",
		})

		_, err := client.Import(ctx, sampleEntry())

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrToolUnavailable))
	})
}
