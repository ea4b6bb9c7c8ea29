package ports

import "context"

// Editor lets the user change a text document in an external editor.
type Editor interface {
	// Edit blocks until the editor exits and returns the saved content.
	// name is a hint for the temporary file name, e.g. "about.page".
	Edit(ctx context.Context, name, content string) (string, error)
}
