package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func descendantsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <label>",
		Short: "List instance pages under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			printLines(cmd.OutOrStdout(), tx.DescendantInstances(args[0]).Sorted())
			return nil
		},
	}
}

func ancestorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <title>",
		Short: "List categories above a page, up to the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			printLines(cmd.OutOrStdout(), tx.AncestorCategories(args[0]).Sorted())
			return nil
		},
	}
}

func parentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parents <title>",
		Short: "List the direct parent categories of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			printLines(cmd.OutOrStdout(), tx.ParentCategories(args[0]))
			return nil
		},
	}
}

func countCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <label>...",
		Short: "Count instance pages under each category concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			counts, err := tx.DescendantCounts(cmd.Context(), args, a.cfg.Query.Workers)
			if err != nil {
				return fmt.Errorf("count failed: %w", err)
			}
			for _, label := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", label, counts[label])
			}
			return nil
		},
	}
}

func titlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles <prefix>",
		Short: "List known page titles starting with prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			printLines(cmd.OutOrStdout(), tx.SearchTitles(args[0]))
			return nil
		},
	}
}

func cyclesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "Report categories that are their own subcategories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			for _, group := range tx.CategoryCycles() {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(group, "\t"))
			}
			return nil
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print index sizes and the root's instance count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.open()
			if err != nil {
				return err
			}
			snap := tx.Snapshot()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "snapshot\t%s\n", snap.ID)
			fmt.Fprintf(w, "root\t%s\n", tx.Root())
			fmt.Fprintf(w, "pages\t%d\n", snap.Pages.Len())
			fmt.Fprintf(w, "titles\t%d\n", snap.Titles.Size())
			fmt.Fprintf(w, "links\t%d\n", snap.Links.Len())
			fmt.Fprintf(w, "labels\t%d\n", snap.Links.NumLabels())
			fmt.Fprintf(w, "symbols\t%d\n", snap.Symbols().Size())
			fmt.Fprintf(w, "instances\t%d\n", tx.NumInstances())
			return nil
		},
	}
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
