package ports

import (
	"context"

	"powerpages/internal/domain"
)

// ConfirmRequest is one question put to the user during a sync run.
type ConfirmRequest struct {
	Messages []string
	Diff     string
	Question string
}

// Confirmer answers confirmation requests. Implementations block until the
// user decides.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
}

// Reporter renders run progress for the user.
type Reporter interface {
	Item(status domain.Status, item string)
	Info(message string)
	Warn(message string)
	Summary(summary *domain.Summary)
}

// Stager records every added and removed file of the sync directory in
// version control. A nil error means the version control tool succeeded.
type Stager interface {
	Stage(ctx context.Context) error
}
