package workspace

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

// Entry is one item of the project directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Manager handles project directory operations.
type Manager struct {
	dir string
}

// NewManager returns a Manager rooted at dir. An empty dir means the current directory.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = "."
	}
	return &Manager{dir: dir}
}

// Path returns the project directory.
func (m *Manager) Path() string { return m.dir }

// Create ensures the project directory exists.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create project directory").
			WithContext("path", m.dir).Build()
	}
	slog.Debug("Using project directory", logfields.Path(m.dir))
	return nil
}

// Entries lists the immediate children of the project directory sorted by name.
func (m *Manager) Entries() ([]Entry, error) {
	items, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list project directory").
			WithContext("path", m.dir).Build()
	}
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		p := filepath.Join(m.dir, it.Name())
		entries = append(entries, Entry{Name: it.Name(), Path: p, IsDir: isDir(it, p)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func isDir(it fs.DirEntry, path string) bool {
	if it.Type()&fs.ModeSymlink == 0 {
		return it.IsDir()
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// RepoPath returns the path of the named repository inside the project directory.
func (m *Manager) RepoPath(name string) string {
	return filepath.Join(m.dir, name)
}

// WriteArtifact writes content to <repo>/<filename>, replacing any existing file.
func (m *Manager) WriteArtifact(repo, filename, content string) (string, error) {
	if filepath.Base(filename) != filename {
		return "", errors.ValidationError(fmt.Sprintf("artifact name %q must be a plain filename", filename)).Build()
	}
	p := filepath.Join(m.RepoPath(repo), filename)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil { //nolint:gosec // artifact is committed and world readable anyway
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to write grading artifact").
			WithContext("path", p).Build()
	}
	slog.Debug("Wrote grading artifact", logfields.Repository(repo), logfields.Path(p))
	return p, nil
}
