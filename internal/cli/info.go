package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/thesyncim/oggtag"
)

func (a *app) infoCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Show stream format, duration and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.probe(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return errors.Wrap(err, "encode json")
				}
				fmt.Fprintln(a.stdout, string(out))
				return nil
			}
			a.printInfo(args[0], info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (a *app) tagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags FILE",
		Short: "Print the tags as KEY=value lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.probe(args[0])
			if err != nil {
				return err
			}
			for _, t := range info.Tags {
				fmt.Fprintln(a.stdout, t.String())
			}
			return nil
		},
	}
}

func (a *app) probe(path string) (*oggtag.Info, error) {
	data, err := a.readTrackBytes(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	info, err := oggtag.ProbeWithOptions(data, oggtag.ProbeOptions{Logger: a.log.WithField("file", path)})
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return info, nil
}

func (a *app) printInfo(path string, info *oggtag.Info) {
	row := func(label string, format string, args ...interface{}) {
		a.key.Fprintf(a.stdout, "%-12s", label+":")
		fmt.Fprintf(a.stdout, " "+format+"\n", args...)
	}

	row("file", "%s", path)
	row("sample rate", "%d Hz", info.SampleRate)
	row("channels", "%d", info.Channels)
	row("bitrate", "%d kbps (nominal)", info.NominalBitrate/1000)
	row("duration", "%s", formatMillis(info.DurationMillis))
	row("vendor", "%s", info.Vendor)
	row("serial", "0x%08x", info.Serial)
	row("pages", "%d", info.PageCount)
	row("fingerprint", "%016x", info.Fingerprint)
	row("tags", "%d", len(info.Tags))
	for _, t := range info.Tags {
		fmt.Fprintf(a.stdout, "  %s\n", t.String())
	}
}

// formatMillis renders a duration as m:ss.mmm.
func formatMillis(ms uint32) string {
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
