// Command generate_sample_export writes a synthetic Journey export for trying out j2d.
// Usage: go run ./cmd/generate_sample_export [--out path/to/export] [--clean]
//
// Then: j2d Journey path/to/export --dry-run -v
package main

import (
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/mrlokans/journey2dayone/internal/cli"
	"github.com/mrlokans/journey2dayone/internal/journey"
	"github.com/mrlokans/journey2dayone/internal/logging"
)

const defaultSampleExportDir = "./sample-export"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("generate_sample_export", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	outDir := fs.String("out", defaultSampleExportDir, "directory to write the sample export to")
	clean := fs.Bool("clean", false, "remove a previously generated sample from the directory first (other files are kept)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		cli.PrintError(stderr, err)
		return 2
	}

	logger, cleanup, err := logging.New(logging.Options{Console: stdout})
	if err != nil {
		cli.PrintError(stderr, errors.Wrap(err, "setting up logging"))
		return 1
	}
	defer cleanup()

	if *clean {
		if err := journey.RemoveSampleExport(*outDir); err != nil {
			cli.PrintError(stderr, errors.Wrap(err, "removing previous sample export"))
			return 1
		}
	}

	logger.Infof("Generating sample Journey export at %s...", *outDir)

	written, err := journey.WriteSampleExport(*outDir, time.Now())
	if err != nil {
		cli.PrintError(stderr, errors.Wrap(err, "writing sample export"))
		return 1
	}
	for _, path := range written {
		logger.Debugf("Wrote %s", path)
	}

	logger.Infof("Sample export generated: %d entry files, %d files in total", journey.SampleEntryCount+1, len(written))
	return 0
}
