// Command omarim is the Omarim AI CLI: interpret a request, dispatch it,
// run a funnel, or list the capability catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath   string
	debugMode bool
)

func main() {
	root := &cobra.Command{
		Use:           "omarim",
		Short:         "Omarim AI business co-pilot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "omarim.yaml", "path to the config file")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(newInterpretCmd())
	root.AddCommand(newDispatchCmd())
	root.AddCommand(newFunnelCmd())
	root.AddCommand(newCapabilitiesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "omarim: %v\n", err)
		os.Exit(1)
	}
}

// newBoundaryLogger builds the zap logger used at the binary boundary.
// Internal packages use the category file logger instead.
func newBoundaryLogger() *zap.Logger {
	if debugMode {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
