package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// The root command silences cobra's own error echo; report
		// anything except an operator interrupt here.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "pigeonhole:", err)
		}
		os.Exit(1)
	}
}
