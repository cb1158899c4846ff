package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pavelanni/commenter/internal/templates"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and manage comment templates",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: withTemplates(func(ctx context.Context, ts *templates.Store, _ []string) error {
			return listTemplates(os.Stdout, ts)
		}),
	}
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withTemplates(func(ctx context.Context, ts *templates.Store, args []string) error {
			t, err := ts.Get(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		}),
	}
	setActive := &cobra.Command{
		Use:   "set-active <id>",
		Short: "Select the active template",
		Args:  cobra.ExactArgs(1),
		RunE: withTemplates(func(ctx context.Context, ts *templates.Store, args []string) error {
			return ts.SetActive(ctx, args[0])
		}),
	}
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in templates",
		Args:  cobra.NoArgs,
		RunE: withTemplates(func(ctx context.Context, ts *templates.Store, _ []string) error {
			ts.ResetToDefault(ctx)
			return nil
		}),
	}
	for _, c := range []*cobra.Command{list, show, setActive, reset} {
		addStoreFlags(c.Flags())
		addLogFlags(c.Flags())
		cmd.AddCommand(c)
	}
	return cmd
}

// withTemplates opens the configured store before running fn.
func withTemplates(fn func(ctx context.Context, ts *templates.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		v := viperForCmd(cmd)
		ctx := context.Background()

		b, err := openBackend(ctx, v)
		if err != nil {
			return err
		}
		defer b.Close()

		ts, err := templates.Open(ctx, b.kv)
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		return fn(ctx, ts, args)
	}
}

func listTemplates(w io.Writer, ts *templates.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTIVE\tID\tKIND\tNAME")
	active := ts.ActiveID()
	for _, t := range ts.Templates() {
		mark := ""
		if t.ID == active {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, t.ID, t.Kind, t.Name)
	}
	return tw.Flush()
}
