package main

import (
	"os"

	"github.com/firefly-engineering/create-new/cmd"
	"github.com/firefly-engineering/create-new/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
