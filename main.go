// termjigsaw is a terminal jigsaw puzzle: pick pieces off the shuffled board
// and drop them into place on the solved board.
package main

import (
	"os"

	"termjigsaw/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
