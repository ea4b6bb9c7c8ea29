package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// Directory implements ports.SyncDirectory on an afero filesystem rooted at
// the sync directory.
type Directory struct {
	root string
	fs   afero.Fs
}

// Ensure Directory implements SyncDirectory
var _ ports.SyncDirectory = (*Directory)(nil)

// NewDirectory creates a sync directory on the OS filesystem.
func NewDirectory(root string) *Directory {
	return NewDirectoryFs(afero.NewOsFs(), root)
}

// NewDirectoryFs creates a sync directory at root inside fs.
func NewDirectoryFs(fs afero.Fs, root string) *Directory {
	return &Directory{
		root: root,
		fs:   afero.NewBasePathFs(fs, root),
	}
}

// Root returns the sync directory path.
func (d *Directory) Root() string {
	return d.root
}

// Stat describes rel; a missing path is not an error.
func (d *Directory) Stat(rel string) (ports.FileInfo, error) {
	info, err := d.fs.Stat(native(rel))
	if errors.Is(err, os.ErrNotExist) {
		return ports.FileInfo{}, nil
	}
	if err != nil {
		return ports.FileInfo{}, fmt.Errorf("failed to stat %s: %w", rel, err)
	}
	return ports.FileInfo{
		Exists:  true,
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
	}, nil
}

// ReadFile returns the content of rel.
func (d *Directory) ReadFile(rel string) (string, error) {
	data, err := afero.ReadFile(d.fs, native(rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes content to a hidden sibling and renames it over rel.
func (d *Directory) WriteFile(rel, content string) error {
	dir, name := path.Split(rel)
	if dir == "" {
		dir = "."
	}
	if err := d.fs.MkdirAll(native(dir), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := native(path.Join(dir, "."+name+".tmp"))
	if err := afero.WriteFile(d.fs, tmp, []byte(content), 0644); err != nil {
		_ = d.fs.Remove(tmp)
		return err
	}
	if err := d.fs.Rename(tmp, native(rel)); err != nil {
		_ = d.fs.Remove(tmp)
		return err
	}
	return nil
}

// Remove deletes a file or an empty directory.
func (d *Directory) Remove(rel string) error {
	return d.fs.Remove(native(rel))
}

// Files lists the non-hidden files below rel in lexical order.
func (d *Directory) Files(rel string) ([]string, error) {
	var files []string
	start := native(rel)
	err := afero.Walk(d.fs, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p != start && domain.IsHiddenName(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Tree lists the entries below rel deepest first, ending with rel itself.
func (d *Directory) Tree(rel string) ([]ports.Entry, error) {
	var entries []ports.Entry
	if _, err := d.tree(path.Clean(rel), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// tree appends the entries of dir and reports whether dir holds hidden entries.
func (d *Directory) tree(dir string, entries *[]ports.Entry) (bool, error) {
	infos, err := afero.ReadDir(d.fs, native(dir))
	if err != nil {
		return false, err
	}

	hidden := false
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if domain.IsHiddenName(info.Name()) {
			hidden = true
			continue
		}
		childHidden, err := d.tree(path.Join(dir, info.Name()), entries)
		if err != nil {
			return false, err
		}
		hidden = hidden || childHidden
	}
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if domain.IsHiddenName(info.Name()) {
			hidden = true
			continue
		}
		*entries = append(*entries, ports.Entry{Path: path.Join(dir, info.Name())})
	}

	if !hidden {
		*entries = append(*entries, ports.Entry{Path: dir, IsDir: true})
	}
	return hidden, nil
}

func native(rel string) string {
	return filepath.FromSlash(rel)
}
