package commands

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"powerpages/internal/application"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

const (
	defaultQuestion  = "Do you want to apply this change?"
	stageQuestion    = "Do you want to add created and removed files to GIT?"
	adminEditWarning = "WARNING: Modified in Admin!"
	dryRunWarning    = "WARNING: Number of deleted records may be inadequate when --dry-run is used!"
)

// SyncOptions are the flags shared by dump and load.
type SyncOptions struct {
	DryRun        bool
	NoInteractive bool
	Quiet         bool
	Force         bool
	GitAdd        bool
}

// SyncResult contains the outcome of a dump or load run
type SyncResult struct {
	Summary *domain.Summary
	Staged  bool
	Message string
}

// Collaborators bundles the ports a sync run talks to.
type Collaborators struct {
	Pages     ports.PageRepository
	Dir       ports.SyncDirectory
	Confirmer ports.Confirmer
	Reporter  ports.Reporter
	Stager    ports.Stager
	Log       logrus.FieldLogger
}

// syncRun carries per-run state: options, the summary and failed items.
type syncRun struct {
	Collaborators
	opts    SyncOptions
	summary *domain.Summary
	failed  []string
}

func newSyncRun(c Collaborators, opts SyncOptions) *syncRun {
	if c.Log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		c.Log = logger
	}
	return &syncRun{
		Collaborators: c,
		opts:          opts,
		summary:       domain.NewSummary(),
	}
}

// confirm auto-approves in non-interactive mode and asks the user otherwise.
func (r *syncRun) confirm(ctx context.Context, req ports.ConfirmRequest) (bool, error) {
	if r.opts.NoInteractive {
		return true, nil
	}
	if req.Question == "" {
		req.Question = defaultQuestion
	}
	return r.Confirmer.Confirm(ctx, req)
}

func (r *syncRun) record(status domain.Status, item string) {
	r.summary.Add(status)
	if status.Change != domain.Unchanged && !r.opts.Quiet {
		r.Reporter.Item(status, item)
	}
}

func (r *syncRun) info(message string) {
	if !r.opts.Quiet {
		r.Reporter.Info(message)
	}
}

// fail records an item whose page file cannot be parsed. Other errors are
// returned unchanged and abort the run.
func (r *syncRun) fail(item string, err error) error {
	var formatErr *domain.FormatError
	if !errors.As(err, &formatErr) {
		return err
	}
	r.Log.WithError(err).WithField("path", item).Warn("skipping malformed page file")
	r.failed = append(r.failed, item)
	r.record(domain.Status{Change: domain.Failed}, item)
	if !r.opts.Quiet {
		r.Reporter.Warn(err.Error())
	}
	return nil
}

// finish prints the summary and reports failed items as an error.
func (r *syncRun) finish() error {
	r.Reporter.Summary(r.summary)
	if len(r.failed) > 0 {
		return &application.FailedItemsError{Items: r.failed}
	}
	return nil
}

func (r *syncRun) result(message string) *SyncResult {
	return &SyncResult{
		Summary: r.summary,
		Message: message,
	}
}
