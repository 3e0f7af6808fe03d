package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slaved/internal/client"
)

func newFrameworksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List frameworks registered on the slave",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				frameworks, err := cl.Frameworks(cmd.Context())
				if err != nil {
					return fmt.Errorf("fetch frameworks: %w", err)
				}
				out := cmd.OutOrStdout()
				if len(frameworks) == 0 {
					fmt.Fprintln(out, "No frameworks registered on this slave")
					return nil
				}

				rows := make([][]string, 0, len(frameworks))
				for _, fw := range frameworks {
					rows = append(rows, []string{
						strconv.FormatInt(fw.ID, 10),
						fw.Name,
						fw.Executor,
						fw.Status,
						fw.RegisteredAt,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Executor", "Status", "Registered"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
