package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/okian/tipper/internal/tipcli"
)

func main() {
	if err := tipcli.NewRootCommand().Execute(); err != nil {
		// input errors have already been rendered by the command
		if !errors.Is(err, tipcli.ErrInputRejected) {
			fmt.Fprintln(os.Stderr, "tipcalc:", err)
		}
		os.Exit(1)
	}
}
