package main

import (
	"fmt"
	"os"

	"github.com/NilFoundation/flagset/cmd/flagcalc/internal/commands"
	"github.com/NilFoundation/flagset/common/logging"
)

func main() {
	logging.SetLogSeverityFromEnv()
	logging.ApplyComponentsFilterEnv()

	if err := commands.NewRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}
