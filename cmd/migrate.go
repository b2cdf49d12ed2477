package cmd

import (
	"fmt"
	"io"

	"github.com/AmiraAbdelhalim/fyyur/migrations"
	"github.com/AmiraAbdelhalim/fyyur/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(stderr, func(mg *database.Migrator) error {
				return mg.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(stderr, func(mg *database.Migrator) error {
				return mg.Down()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(stderr, func(mg *database.Migrator) error {
				v, rev, dirty, err := mg.Version()
				if err != nil {
					return err
				}
				if v == 0 {
					fmt.Fprintln(stdout, "no migrations applied")
					return nil
				}
				fmt.Fprintf(stdout, "version %d (%s)", v, rev)
				if dirty {
					fmt.Fprint(stdout, " dirty")
				}
				fmt.Fprintln(stdout)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List the embedded migration chain.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printHistory(stdout)
		},
	})

	return cmd
}

func withMigrator(stderr io.Writer, fn func(*database.Migrator) error) error {
	cfg, closer, err := setup(stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	mg, err := database.NewMigrator(cfg.DSN())
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}

// printHistory needs no database; it reads the embedded revision headers.
func printHistory(w io.Writer) error {
	chain, err := migrations.Chain()
	if err != nil {
		return err
	}
	if err := migrations.Verify(chain); err != nil {
		return err
	}

	head := migrations.Head(chain)
	for i := len(chain) - 1; i >= 0; i-- {
		r := chain[i]
		parent := r.Parent
		if parent == "" {
			parent = "<base>"
		}
		line := fmt.Sprintf("%s -> %s, %s", parent, r.ID, r.Name)
		if r.ID == head {
			line += " (head)"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
