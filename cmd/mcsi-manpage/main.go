package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/mcsi/cmd/mcsi"
	"github.com/arthur-debert/mcsi/internal/version"
)

// Writes one man page per command into the directory given as the only
// argument, or the root page to stdout when none is given.
func main() {
	rootCmd := mcsi.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MCSI",
		Section: "1",
		Source:  "mcsi " + version.Version,
		Manual:  "mcsi manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
