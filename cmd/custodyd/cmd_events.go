package main

import (
	"github.com/spf13/cobra"
)

func eventsCmd(run runner) *cobra.Command {
	var (
		after uint64
		limit int
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List committed events from the journal",
		Args:  cobra.NoArgs,
		RunE: run(func(e *env, _ []string) error {
			records, err := e.node.journal.List(after, limit)
			if err != nil {
				return err
			}
			return e.print(records)
		}),
	}
	cmd.Flags().Uint64Var(&after, "after", 0, "only list events with a greater sequence")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of events to list, 0 for all")
	return cmd
}
