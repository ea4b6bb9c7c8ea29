package git

import (
	"context"
	"os/exec"

	"powerpages/internal/application"
	"powerpages/internal/ports"
)

// Stager implements ports.Stager by running `git add -A` on the sync directory.
type Stager struct {
	dir    string
	binary string
}

// Ensure Stager implements ports.Stager
var _ ports.Stager = (*Stager)(nil)

// NewStager creates a stager for the sync directory dir.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir, binary: "git"}
}

// Stage stages every added and removed file below the sync directory. Success
// is decided by git's exit status only; output is attached to the error.
func (s *Stager) Stage(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, s.binary, "-C", s.dir, "add", "-A", s.dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &application.StageError{
			Dir:    s.dir,
			Output: string(output),
			Err:    err,
		}
	}
	return nil
}
