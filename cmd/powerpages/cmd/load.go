package cmd

import (
	"github.com/spf13/cobra"

	"powerpages/internal/application/commands"
)

var loadOpts commands.SyncOptions

var loadCmd = &cobra.Command{
	Use:   "load [root-url]",
	Short: "Read page files from the sync directory into the database",
	Long: `Read the page file of root-url, or every file of its directory, into
the database and delete pages below it whose file is gone.

Pages modified in the admin since the last sync are left alone unless
--force is given.

Examples:
  powerpages load
  powerpages load /docs/ --dry-run
  powerpages load /about/ --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSyncSession()
		if err != nil {
			return err
		}
		defer session.Close()

		_, err = commands.NewLoadCommand(session.deps, rootArg(args), loadOpts).Execute(cmd.Context())
		return err
	},
}

func init() {
	addSyncFlags(loadCmd, &loadOpts)
	rootCmd.AddCommand(loadCmd)
}
