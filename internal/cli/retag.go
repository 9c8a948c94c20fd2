package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thesyncim/oggtag"
	"github.com/thesyncim/oggtag/vorbis"
)

type retagFlags struct {
	set     []string
	remove  []string
	clear   bool
	vendor  string
	output  string
	inPlace bool
}

func (a *app) retagCommand() *cobra.Command {
	var f retagFlags
	cmd := &cobra.Command{
		Use:   "retag FILE",
		Short: "Rewrite the comment header",
		Long: `Rewrite the Vorbis comment header of FILE.

Each --set KEY=VALUE replaces every existing KEY tag; repeating a key keeps
all of its values. --remove deletes a key, --clear starts from no tags.
Audio pages are copied unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.retag(args[0], f)
		},
	}

	cmd.Flags().StringArrayVar(&f.set, "set", nil, "set a tag (KEY=VALUE, repeatable)")
	cmd.Flags().StringArrayVar(&f.remove, "remove", nil, "remove every tag with KEY (repeatable)")
	cmd.Flags().BoolVar(&f.clear, "clear", false, "drop all existing tags")
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "replace the vendor string")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result to this file")
	cmd.Flags().BoolVar(&f.inPlace, "in-place", false, "overwrite FILE")
	return cmd
}

func (a *app) retag(path string, f retagFlags) error {
	if (f.output == "") == !f.inPlace {
		return errors.New("retag: exactly one of --output or --in-place is required")
	}
	set, err := parseAssignments(f.set)
	if err != nil {
		return err
	}

	data, err := a.readTrackBytes(path)
	if err != nil {
		return errors.Wrap(err, path)
	}
	log := a.log.WithField("file", path)

	info, err := oggtag.ProbeWithOptions(data, oggtag.ProbeOptions{Logger: log})
	if err != nil {
		return errors.Wrap(err, path)
	}

	comments := vorbis.Comments{Vendor: info.Vendor}
	switch {
	case f.vendor != "":
		comments.Vendor = f.vendor
	case a.cfg.Vendor != "":
		comments.Vendor = a.cfg.Vendor
	}
	if !f.clear {
		comments.Tags = info.Tags
	}
	comments.Tags = applyTagEdits(comments.Tags, f.remove, set)

	out, err := oggtag.RetagWithOptions(data, comments, oggtag.RetagOptions{Logger: log})
	if err != nil {
		return errors.Wrap(err, path)
	}

	dest := f.output
	if f.inPlace {
		dest = path
		err = writeFileAtomic(dest, out)
	} else {
		err = os.WriteFile(dest, out, 0o644)
	}
	if err != nil {
		return errors.Wrapf(err, "write %s", dest)
	}

	log.WithFields(logrus.Fields{
		"output": dest,
		"tags":   len(comments.Tags),
		"bytes":  len(out),
	}).Info("retagged")
	a.ok.Fprint(a.stdout, "OK")
	fmt.Fprintf(a.stdout, "   %s -> %s (%d tags)\n", path, dest, len(comments.Tags))
	return nil
}

// parseAssignments splits KEY=VALUE arguments.
func parseAssignments(args []string) ([]vorbis.Tag, error) {
	tags := make([]vorbis.Tag, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("invalid tag %q: want KEY=VALUE", arg)
		}
		if !validKey(key) {
			return nil, errors.Errorf("invalid tag key %q", key)
		}
		if !utf8.ValidString(value) {
			return nil, errors.Errorf("invalid tag value for %s: not UTF-8", key)
		}
		tags = append(tags, vorbis.Tag{Key: key, Value: value})
	}
	return tags, nil
}

// validKey reports whether key is a legal comment field name: printable
// ASCII 0x20 through 0x7D excluding '='.
func validKey(key string) bool {
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < 0x20 || c > 0x7D || c == '=' {
			return false
		}
	}
	return true
}

// applyTagEdits drops every tag whose key is in remove or set, then
// appends set in order. Keys compare case-insensitively.
func applyTagEdits(tags []vorbis.Tag, remove []string, set []vorbis.Tag) []vorbis.Tag {
	drop := make(map[string]bool, len(remove)+len(set))
	for _, k := range remove {
		drop[strings.ToUpper(k)] = true
	}
	for _, t := range set {
		drop[strings.ToUpper(t.Key)] = true
	}

	out := make([]vorbis.Tag, 0, len(tags)+len(set))
	for _, t := range tags {
		if !drop[strings.ToUpper(t.Key)] {
			out = append(out, t)
		}
	}
	return append(out, set...)
}
