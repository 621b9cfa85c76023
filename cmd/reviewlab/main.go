package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// errConfig marks failures caused by the environment or flags rather than at runtime.
var errConfig = stderrors.New("config error")

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reviewlab terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps os.Exit out of the commands so their deferred cleanup always executes.
func run() (int, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "reviewlab",
		Short:         "Review sentiment training and inference",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		ServeCmd(),
		PredictCmd(),
		TrainCmd(),
		PainPointsCmd(),
		InspectCmd(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if stderrors.Is(err, errConfig) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

func configError(err error) error {
	return fmt.Errorf("%w: %v", errConfig, err)
}
