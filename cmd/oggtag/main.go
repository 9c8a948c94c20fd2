// Command oggtag inspects, validates and retags Ogg Vorbis files.
package main

import (
	"os"

	"github.com/thesyncim/oggtag/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args, os.Stdout, os.Stderr))
}
