package version

import (
	"fmt"
	"io"
)

var (
	Version string
	Commit  string
)

func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "longstack version: %s, Git sha: %s\n", Version, Commit)
}
