package dayone

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrToolUnavailable marks failures to launch the Day One CLI. They are
// fatal for the whole run, unlike ImportError.
var ErrToolUnavailable = errors.New("day one cli unavailable")

const installHint = "install the Day One CLI (https://dayoneapp.com/guides/tips-and-tutorials/command-line-interface-cli/) " +
	"or point --dayone-bin at it"

// ImportError is a Day One CLI run that exited with a non-zero status.
type ImportError struct {
	ExitCode int
	Stderr   string
}

func (e *ImportError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("dayone2 exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("dayone2 exited with code %d: %s", e.ExitCode, stderr)
}

func toolUnavailable(err error, binary string) error {
	err = errors.Wrapf(err, "launching %s", binary)
	return errors.WithHint(errors.Mark(err, ErrToolUnavailable), installHint)
}
