// prune-exports filters a bulk workspace export down to the resources
// owned by a set of teams, selected by tag.
package main

import (
	"os"

	"github.com/gregwood-db/prune-exports/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
