package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// stringListFlag collects the values of a repeatable string flag.
type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }

func (s *stringListFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type commandParams struct {
	mode string

	environment string
	envFile     string
	username    string
	password    string
	token       string
	debug       bool

	// prepare
	testInstanceID string
	testID         string
	testAlias      string
	testVersion    string
	baseDir        string
	namespace      string

	// upload
	scorePath       string
	storageCollabID string

	// report
	resultIDs    stringListFlag
	reportDir    string
	onlyCombined bool
}

func (c *commandParams) Read(args []string) bool {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		fmt.Fprintln(os.Stderr, "a command is required: prepare, upload, or report")
		return false
	}
	c.mode = args[1]

	fs := flag.NewFlagSet(c.mode, flag.ExitOnError)
	fs.StringVar(&c.environment, "env", "production", "named service environment")
	fs.StringVar(&c.envFile, "env-file", "", "YAML file defining additional environments")
	fs.StringVar(&c.username, "username", "", "account name for authentication")
	fs.StringVar(&c.password, "password", "", "password for authentication")
	fs.StringVar(&c.token, "token", "", "previously obtained access token (skips authentication)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")

	fs.StringVar(&c.testInstanceID, "test-instance", "", "test instance ID to prepare")
	fs.StringVar(&c.testID, "test-id", "", "test definition ID to prepare")
	fs.StringVar(&c.testAlias, "test-alias", "", "test definition alias to prepare")
	fs.StringVar(&c.testVersion, "test-version", "", "test version (latest if omitted)")
	fs.StringVar(&c.baseDir, "base-dir", ".", "directory under which the run directory is created")
	fs.StringVar(&c.namespace, "namespace", "", "first path element of the run directory")

	fs.StringVar(&c.scorePath, "score", "", "path of the score file to upload")
	fs.StringVar(&c.storageCollabID, "storage-collab", "", "collab for result output files")

	fs.Var(&c.resultIDs, "result", "result ID to include in the report (may be repeated)")
	fs.StringVar(&c.reportDir, "out", "./report", "directory for generated report PDFs")
	fs.BoolVar(&c.onlyCombined, "only-combined", false, "keep only the combined report PDF")

	if err := fs.Parse(args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}

	switch c.mode {
	case "prepare":
		if c.testInstanceID == "" && c.testID == "" && c.testAlias == "" {
			fmt.Fprintln(os.Stderr, "prepare requires -test-instance, -test-id, or -test-alias")
			return false
		}
	case "upload":
		if c.scorePath == "" {
			fmt.Fprintln(os.Stderr, "upload requires -score")
			return false
		}
	case "report":
		if len(c.resultIDs) == 0 {
			fmt.Fprintln(os.Stderr, "report requires at least one -result")
			return false
		}
	case "run":
		fmt.Fprintln(os.Stderr, "running a test needs a model object, which only Go code can supply;")
		fmt.Fprintln(os.Stderr, "use workflow.Runner (or workflow.Workflow.RunTest) from your program")
		return false
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q; expected prepare, upload, or report\n", c.mode)
		return false
	}
	return true
}
