package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/navmatch/urlmatch"
)

// app holds state shared by the subcommands.
type app struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "navmatch",
		Short:        "Match URLs against route descriptors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.logLevel, a.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newMatchCmd(a), newValidateCmd(a))

	return root
}

// newLogger builds a slog logger writing to w.
func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", format)
	}
}

// newMatcher returns a Matcher that reports when its pattern cache fills.
func (a *app) newMatcher() *urlmatch.Matcher {
	return urlmatch.New(urlmatch.Config{
		OnCacheFull: func(limit int) {
			a.logger.Warn("pattern cache full, new patterns will not be cached", "limit", limit)
		},
	})
}
