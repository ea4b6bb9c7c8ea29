package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"powerpages/internal/ports"
)

// Opener implements ports.Editor with the user's terminal editor
type Opener struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// Ensure Opener implements ports.Editor
var _ ports.Editor = (*Opener)(nil)

// NewOpener creates an editor opener attached to the process's terminal
func NewOpener() *Opener {
	return &Opener{
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
}

// Edit writes content to a temporary file, opens it and reads it back
func (o *Opener) Edit(ctx context.Context, name, content string) (string, error) {
	dir, err := os.MkdirTemp("", "powerpages-edit-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	cmd, err := o.Command(ctx, path)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}

// Command returns the editor process for path without starting it
func (o *Opener) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry arguments, e.g. "code --wait".
	parts := strings.Fields(editor)
	args := append(parts[1:], path)

	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = o.in
	cmd.Stdout = o.out
	cmd.Stderr = o.errOut
	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := o.getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := o.getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
