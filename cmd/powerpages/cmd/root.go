package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"powerpages/internal/adapters/sqlite"
	"powerpages/internal/application/processors"
	"powerpages/internal/config"
	"powerpages/internal/logging"
)

var (
	configPath string
	cfg        *config.Config
	logger     *logrus.Logger
	logCloser  io.Closer
	store      *sqlite.Store
	registry   *processors.Registry
)

var rootCmd = &cobra.Command{
	Use:   "powerpages",
	Short: "Synchronize CMS pages with a directory of page files",
	Long: `powerpages keeps the pages of a site in step with a tree of plain-text
page files, so pages can be edited with any editor and kept under version control.

"dump" writes pages from the database into the sync directory, "load" reads
page files back into the database. Both show what changes and ask before
touching anything unless --no-interactive is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if cfg, err = config.Load(configPath, cmd.Flags()); err != nil {
			return err
		}
		if cfg.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		if logger, logCloser, err = logging.New(cfg.Log, os.Stderr); err != nil {
			return err
		}
		if store, err = sqlite.Open(cfg.Database); err != nil {
			return err
		}
		registry = processors.DefaultRegistry()

		logger.WithField("database", store.Path()).Debug("store opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// PersistentPostRunE does not run after a failed command.
		_ = closeAll()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: powerpages.yaml in ., the user config dir or ~/.powerpages)")
	rootCmd.PersistentFlags().String("sync-dir", "", "directory holding the page files")
	rootCmd.PersistentFlags().String("db", "", "page database file")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func closeAll() error {
	var firstErr error
	if store != nil {
		firstErr = store.Close()
		store = nil
	}
	if logCloser != nil {
		if err := logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		logCloser = nil
	}
	return firstErr
}
