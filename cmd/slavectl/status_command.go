package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slaved/internal/api"
	"slaved/internal/client"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show slave daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				status, err := cl.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("fetch status: %w", err)
				}
				renderStatus(cmd, status)
				return nil
			})
		},
	}
}

func renderStatus(cmd *cobra.Command, status api.SlaveStatus) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader("Slave", colorize) {
		fmt.Fprintln(out, line)
	}

	registrationKind := statusWarn
	registration := "not yet registered with master"
	if status.Registered {
		registrationKind = statusOK
		registration = "registered as slave " + strconv.FormatInt(status.SlaveID, 10)
	}
	fmt.Fprintln(out, renderStatusLine("Registration", registrationKind, registration, colorize))
	fmt.Fprintln(out, renderStatusLine("Session", statusInfo, status.SessionID, colorize))
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, status.StartedAt, colorize))
	fmt.Fprintln(out, renderStatusLine("Frameworks", statusInfo,
		fmt.Sprintf("%d total, %d active", status.Frameworks, status.ActiveCount), colorize))

	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Paths", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Work dir", statusInfo, status.WorkDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Log dir", statusInfo, status.LogDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Registry DB", statusInfo, status.RegistryDBPath, colorize))
	fmt.Fprintln(out, renderStatusLine("Lock file", statusInfo, status.LockFilePath, colorize))
}
