package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thesyncim/oggtag/container/ogg"
)

func (a *app) resyncCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "resync FILE",
		Short: "Drop damaged bytes and keep every valid page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("resync: --output is required")
			}
			return a.resync(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the recovered track to this file")
	return cmd
}

func (a *app) resync(path, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read")
	}

	track, skipped := ogg.ParseTrackLenient(data)
	if track.PageCount() == 0 {
		a.fail.Fprint(a.stdout, "FAIL")
		fmt.Fprintf(a.stdout, " %s: no valid pages\n", path)
		return &exitError{code: 1}
	}
	if err := os.WriteFile(output, track.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", output)
	}

	a.log.WithFields(logrus.Fields{
		"file":    path,
		"output":  output,
		"pages":   track.PageCount(),
		"skipped": skipped,
	}).Info("resynced")
	a.ok.Fprint(a.stdout, "OK")
	fmt.Fprintf(a.stdout, "   %s -> %s (%d pages kept, %d bytes dropped)\n", path, output, track.PageCount(), skipped)
	return nil
}
