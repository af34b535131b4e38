package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/skillpack/internal/cmd"
	"github.com/dendrascience/skillpack/version"
	"github.com/pkg/errors"
)

// errorHandler stays quiet for commands that already printed their own
// diagnostics and defers to fang's styled output for everything else.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.GetFullVersion()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
