// Package dayone creates entries through the dayone2 command line tool.
package dayone

import (
	"context"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

const DefaultBinary = "dayone2"

var entryIDPattern = regexp.MustCompile(`([A-F0-9]+)\s*$`)

type Options struct {
	// Binary defaults to DefaultBinary, resolved through PATH.
	Binary  string
	Journal string
	// Runner defaults to ExecRunner.
	Runner Runner
	// DryRun logs each command instead of running it.
	DryRun bool
	Logger *zap.SugaredLogger
}

type Client struct {
	binary  string
	journal string
	runner  Runner
	dryRun  bool
	logger  *zap.SugaredLogger
}

// Result describes a created entry. EntryID is empty when the tool did not
// print one, or in dry-run mode.
type Result struct {
	EntryID string
}

func NewClient(opts Options) *Client {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		binary:  binary,
		journal: opts.Journal,
		runner:  runner,
		dryRun:  opts.DryRun,
		logger:  logger.Named("dayone"),
	}
}

// BuildArgs returns the dayone2 arguments that create entry. The entry body
// is not part of them; it goes to stdin.
func (c *Client) BuildArgs(entry entities.NormalizedEntry) []string {
	args := []string{
		"-j", c.journal,
		"-d", entry.Timestamp,
		"-z", entry.TimezoneName,
	}
	if len(entry.Tags) > 0 {
		args = append(args, "-t")
		args = append(args, entry.Tags...)
	}
	if len(entry.AttachmentPaths) > 0 {
		args = append(args, "-p")
		args = append(args, entry.AttachmentPaths...)
	}
	if entry.Coordinates != nil {
		args = append(args, "--coordinate",
			formatCoordinate(entry.Coordinates.Latitude),
			formatCoordinate(entry.Coordinates.Longitude),
		)
	}
	return append(args, "--", "new")
}

// Import creates entry in the configured journal.
func (c *Client) Import(ctx context.Context, entry entities.NormalizedEntry) (Result, error) {
	cmd := Command{
		Binary: c.binary,
		Args:   c.BuildArgs(entry),
		Stdin:  entry.Text,
	}
	line := shellquote.Join(append([]string{cmd.Binary}, cmd.Args...)...)

	if c.dryRun {
		c.logger.Infof("Dry run, not executing: %s", line)
		return Result{}, nil
	}

	c.logger.Debugf("Executing: %s", line)
	out, err := c.runner.Run(ctx, cmd)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, errors.Wrap(ctxErr, "importing entry")
		}
		return Result{}, toolUnavailable(err, c.binary)
	}

	if out.ExitCode != 0 {
		return Result{}, &ImportError{ExitCode: out.ExitCode, Stderr: out.Stderr}
	}

	id := ParseEntryID(out.Stdout)
	if id == "" {
		c.logger.Debugf("No entry id in dayone2 output for %s: %q", entry.ForeignID, out.Stdout)
	}
	return Result{EntryID: id}, nil
}

// ParseEntryID extracts the trailing upper-case hex id from dayone2's
// "Created new entry with uuid: <ID>" output.
func ParseEntryID(stdout string) string {
	m := entryIDPattern.FindStringSubmatch(stdout)
	if m == nil {
		return ""
	}
	return m[1]
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
