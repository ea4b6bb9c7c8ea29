package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"powerpages/internal/application/commands"
)

var dumpOpts commands.SyncOptions

var dumpCmd = &cobra.Command{
	Use:   "dump [root-url]",
	Short: "Write pages from the database into the sync directory",
	Long: `Write the page at root-url and every page below it into page files,
and remove files below it that no longer belong to a page.

Examples:
  powerpages dump
  powerpages dump /docs/ --dry-run
  powerpages dump / --no-interactive --git-add`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSyncSession()
		if err != nil {
			return err
		}
		defer session.Close()

		result, err := commands.NewDumpCommand(session.deps, rootArg(args), dumpOpts).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if result.Staged {
			fmt.Fprintln(cmd.OutOrStdout(), "Changes added to GIT")
		}
		return nil
	},
}

func init() {
	addSyncFlags(dumpCmd, &dumpOpts)
	dumpCmd.Flags().BoolVar(&dumpOpts.GitAdd, "git-add", false, "stage created and removed files in git")
	rootCmd.AddCommand(dumpCmd)
}
