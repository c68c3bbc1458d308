// skytool queries the ground-level sky model from the command line and
// serves it to renderers over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/skyground/internal/logger"
)

func main() {
	// Until the config is read, log at info to stderr.
	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd and returns the process exit code.
func execute(cmd *cobra.Command) int {
	defer logger.Sync()
	c, err := cmd.ExecuteC()
	if err != nil {
		logger.Error("command failed", zap.String("command", c.CommandPath()), zap.Error(err))
		return 1
	}
	return 0
}
