package cmd

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "skillpack",
		ReportTimestamp: true,
		Level:           lvl,
	})
	return logger, nil
}
