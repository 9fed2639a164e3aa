// Command canvasanim plays and validates animation timeline scripts.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/canvasanim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
