// Package cli implements the oggtag command.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thesyncim/oggtag/container/ogg"
	"github.com/thesyncim/oggtag/internal/config"
	"github.com/thesyncim/oggtag/internal/logging"
)

// exitError carries a non-zero exit status for a failure that was already
// reported to the user.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags.
	configPath string
	logLevel   string
	noColor    bool

	cfg config.Config
	log *logrus.Logger

	ok   *color.Color
	fail *color.Color
	key  *color.Color
}

// Run executes the command line args (args[0] is the program name) and
// returns the process exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		log:    logging.Discard(),
	}

	root := a.rootCommand()
	root.SetArgs(args[1:])
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(stderr, "oggtag: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "oggtag",
		Short:         "Inspect, validate and retag Ogg Vorbis files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (.toml, .ini or .cfg)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.checkCommand(),
		a.infoCommand(),
		a.tagsCommand(),
		a.retagCommand(),
		a.resyncCommand(),
	)
	return root
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if cmd.Flags().Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if a.noColor {
		a.cfg.Color = false
	}

	level, err := logging.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	a.log = logging.New(level, a.stderr)
	a.ok = color.New(color.FgGreen, color.Bold)
	a.fail = color.New(color.FgRed, color.Bold)
	a.key = color.New(color.FgCyan)
	if !a.cfg.Color {
		a.ok.DisableColor()
		a.fail.DisableColor()
		a.key.DisableColor()
	}

	a.log.WithFields(logrus.Fields{
		"config":  a.configPath,
		"level":   a.cfg.LogLevel,
		"lenient": a.cfg.Lenient,
	}).Debug("configured")
	return nil
}

// readTrackBytes reads a file and, in lenient mode, drops damaged ranges.
func (a *app) readTrackBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	if !a.cfg.Lenient {
		return data, nil
	}

	track, skipped := ogg.ParseTrackLenient(data)
	if skipped > 0 {
		a.log.WithFields(logrus.Fields{
			"file":    path,
			"skipped": skipped,
			"pages":   track.PageCount(),
		}).Warn("recovered damaged file")
	}
	return track.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file next to path and
// renames it over path, keeping the permission bits of the existing file.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".oggtag-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "write temporary file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "close temporary file")
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "chmod temporary file")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "replace file")
	}
	return nil
}
