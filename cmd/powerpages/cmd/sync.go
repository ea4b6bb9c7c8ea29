package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"powerpages/internal/adapters/console"
	"powerpages/internal/adapters/filesystem"
	"powerpages/internal/adapters/git"
	"powerpages/internal/adapters/tui"
	"powerpages/internal/application/commands"
	"powerpages/internal/ports"
)

// addSyncFlags registers the options shared by dump and load.
func addSyncFlags(c *cobra.Command, opts *commands.SyncOptions) {
	c.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would change without changing anything")
	c.Flags().BoolVar(&opts.NoInteractive, "no-interactive", false, "apply every change without asking")
	c.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print only the summary")
	c.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite pages modified in the admin")
}

// syncSession holds what a dump or load run needs for its lifetime.
type syncSession struct {
	deps commands.Collaborators
	lock *filesystem.Lock
}

func openSyncSession() (*syncSession, error) {
	if err := cfg.RequireSyncDirectory(); err != nil {
		return nil, err
	}
	info, err := os.Stat(cfg.SyncDirectory)
	if err != nil {
		return nil, fmt.Errorf("sync directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sync directory %s is not a directory", cfg.SyncDirectory)
	}

	lock, err := filesystem.AcquireLock(cfg.LockPath())
	if err != nil {
		return nil, err
	}

	return &syncSession{
		deps: commands.Collaborators{
			Pages:     store,
			Dir:       filesystem.NewDirectory(cfg.SyncDirectory),
			Confirmer: newConfirmer(),
			Reporter:  console.NewReporter(os.Stdout),
			Stager:    git.NewStager(cfg.SyncDirectory),
			Log:       logger.WithField("sync_dir", cfg.SyncDirectory),
		},
		lock: lock,
	}, nil
}

func (s *syncSession) Close() {
	if err := s.lock.Release(); err != nil {
		logger.WithError(err).Warn("failed to release sync lock")
	}
}

// newConfirmer uses the full-screen prompt on a terminal and plain Y/N lines otherwise.
func newConfirmer() ports.Confirmer {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.NewConfirmer(os.Stdin, os.Stdout)
	}
	return console.NewPrompt(os.Stdin, os.Stdout)
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "/"
	}
	return args[0]
}
