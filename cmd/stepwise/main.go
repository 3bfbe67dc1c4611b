package main

import (
	"errors"
	"fmt"
	"os"

	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus maps a fatally failed procedure to its accumulated exit
// status; every other error exits with the conventional 1.
func exitStatus(err error) int {
	var fatal *stepwiseerrors.FatalError
	if errors.As(err, &fatal) {
		return fatal.ExitCode()
	}
	return 1
}
