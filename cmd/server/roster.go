package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
)

var (
	rosterFile    string
	rosterDB      string
	rosterReplace bool
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage roster data",
}

var rosterImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a roster file into a SQLite database",
	Long:  `Read characters from a YAML or JSON roster file and write them to a SQLite roster database. File order becomes roster order.`,
	RunE:  runRosterImport,
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the characters in a SQLite roster database",
	RunE:  runRosterList,
}

func init() {
	rosterImportCmd.Flags().StringVar(&rosterFile, "file", "", "Roster file (required)")
	rosterImportCmd.Flags().StringVar(&rosterDB, "db", "roster.db", "SQLite database path")
	rosterImportCmd.Flags().BoolVar(&rosterReplace, "replace", false, "Remove characters missing from the file")
	_ = rosterImportCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	rosterListCmd.Flags().StringVar(&rosterDB, "db", "roster.db", "SQLite database path")

	rosterCmd.AddCommand(rosterImportCmd)
	rosterCmd.AddCommand(rosterListCmd)
}

func runRosterImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	characters, err := roster.LoadFile(rosterFile)
	if err != nil {
		return fmt.Errorf("failed to read roster file: %w", err)
	}

	repo, err := roster.OpenSQLite(ctx, &roster.SQLiteConfig{Path: rosterDB})
	if err != nil {
		return fmt.Errorf("failed to open roster db: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	out, err := repo.Upsert(ctx, roster.UpsertInput{
		Characters: characters,
		Replace:    rosterReplace,
	})
	if err != nil {
		return fmt.Errorf("failed to import roster: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d characters into %s", out.Written, rosterDB)
	if rosterReplace {
		fmt.Fprintf(cmd.OutOrStdout(), ", removed %d", out.Removed)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func runRosterList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := roster.OpenSQLite(ctx, &roster.SQLiteConfig{Path: rosterDB})
	if err != nil {
		return fmt.Errorf("failed to open roster db: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	out, err := repo.List(ctx, roster.ListInput{})
	if err != nil {
		return fmt.Errorf("failed to list roster: %w", err)
	}

	for _, c := range out.Characters {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", c.ID, c.Name.Localize("en"))
	}
	return nil
}
