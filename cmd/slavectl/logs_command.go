package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slaved/internal/client"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var full bool

	cmd := &cobra.Command{
		Use:   "logs [LEVEL]",
		Short: "Print the slave's own log at the given level (default INFO)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "INFO"
			if len(args) == 1 {
				level = strings.ToUpper(args[0])
			}
			n, err := resolveLineCount(ctx, lines, full)
			if err != nil {
				return err
			}
			return ctx.withClient(func(cl *client.Client) error {
				text, err := cl.SlaveLog(cmd.Context(), level, n)
				if err != nil {
					return describeLogError(err, "slave log "+level)
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of trailing lines to print (defaults to the configured tail size)")
	cmd.Flags().BoolVar(&full, "full", false, "Print the whole log file")
	return cmd
}

func newFrameworkLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var full bool

	cmd := &cobra.Command{
		Use:   "framework-logs FRAMEWORK_ID {stdout|stderr}",
		Short: "Print a framework's stdout or stderr log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 0 {
				return fmt.Errorf("invalid framework id %q", args[0])
			}
			logType := strings.ToLower(args[1])
			if logType != "stdout" && logType != "stderr" {
				return fmt.Errorf("log type must be stdout or stderr, got %q", args[1])
			}
			n, err := resolveLineCount(ctx, lines, full)
			if err != nil {
				return err
			}
			return ctx.withClient(func(cl *client.Client) error {
				text, err := cl.FrameworkLog(cmd.Context(), id, logType, n)
				if err != nil {
					return describeLogError(err, fmt.Sprintf("framework %d %s", id, logType))
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of trailing lines to print (defaults to the configured tail size)")
	cmd.Flags().BoolVar(&full, "full", false, "Print the whole log file")
	return cmd
}

// resolveLineCount turns the --lines/--full flags into a request line count.
// Zero means the whole file on the wire, so the configured tail default fills
// in when neither flag was given.
func resolveLineCount(ctx *commandContext, lines int, full bool) (int, error) {
	if full {
		return 0, nil
	}
	if lines > 0 {
		return lines, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return 0, err
	}
	return cfg.Web.TailDefaultLines, nil
}

func describeLogError(err error, what string) error {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("fetch %s: %s", what, statusErr.Message)
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}
