package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thesyncim/oggtag/container/ogg"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate every page of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !a.check(path) {
					failed++
				}
			}
			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// check validates one file strictly and reports the result.
func (a *app) check(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		a.fail.Fprint(a.stdout, "FAIL")
		fmt.Fprintf(a.stdout, " %s: %v\n", path, err)
		return false
	}

	track, err := ogg.ParseTrack(data)
	if err != nil {
		a.fail.Fprint(a.stdout, "FAIL")
		var pe *ogg.PageError
		if errors.As(err, &pe) {
			fmt.Fprintf(a.stdout, " %s: page %d at offset %d: %v\n", path, pe.Index, pe.Offset, pe.Err)
		} else {
			fmt.Fprintf(a.stdout, " %s: %v\n", path, err)
		}
		a.log.WithFields(logrus.Fields{"file": path, "error": err}).Debug("check failed")
		return false
	}

	a.ok.Fprint(a.stdout, "OK")
	fmt.Fprintf(a.stdout, "   %s (%d pages, %d bytes)\n", path, track.PageCount(), track.Len())
	return true
}
