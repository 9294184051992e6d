package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrz1836/gitsync/internal/clock"
	"github.com/mrz1836/gitsync/internal/constants"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/flock"
)

// LockTimeout is the maximum duration to wait for acquiring the state lock.
const LockTimeout = 5 * time.Second

// Directory and file permission constants.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// State is what gitsync remembers about one repository between invocations.
type State struct {
	RepoPath  string    `json:"repo_path"`
	Location  string    `json:"location,omitempty"`
	Last      *Session  `json:"last,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists per-repository state.
type Store interface {
	// Load returns the saved state for repoPath, or an empty State if none exists.
	Load(ctx context.Context, repoPath string) (*State, error)

	// Update applies fn to the saved state and writes it back atomically.
	Update(ctx context.Context, repoPath string, fn func(*State)) error
}

// FileStore keeps one JSON file per repository under dir.
type FileStore struct {
	dir   string
	clock clock.Clock
}

// StoreOption configures a FileStore.
type StoreOption func(*FileStore)

// WithClock sets the clock used to stamp UpdatedAt.
func WithClock(c clock.Clock) StoreOption {
	return func(s *FileStore) {
		s.clock = c
	}
}

// NewFileStore creates a FileStore rooted at dir (usually ~/.gitsync/state).
func NewFileStore(dir string, opts ...StoreOption) *FileStore {
	s := &FileStore{dir: dir, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory state files live in.
func (s *FileStore) Dir() string {
	return s.dir
}

// statePath maps a repository path to a stable file name.
func (s *FileStore) statePath(repoPath string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.Clean(repoPath)))
	return filepath.Join(s.dir, id.String()+constants.StateFileExt)
}

// Load returns the saved state for repoPath.
func (s *FileStore) Load(ctx context.Context, repoPath string) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if repoPath == "" {
		return nil, fmt.Errorf("repository path: %w", gserrors.ErrEmptyValue)
	}
	return s.read(repoPath)
}

func (s *FileStore) read(repoPath string) (*State, error) {
	data, err := os.ReadFile(s.statePath(repoPath)) //#nosec G304 -- path is derived from a hash
	if errors.Is(err, os.ErrNotExist) {
		return &State{RepoPath: repoPath}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", s.statePath(repoPath), gserrors.ErrStateCorrupt, err)
	}
	st.RepoPath = repoPath
	return &st, nil
}

// Update applies fn under the state lock and writes the result atomically.
func (s *FileStore) Update(ctx context.Context, repoPath string, fn func(*State)) error {
	if repoPath == "" {
		return fmt.Errorf("repository path: %w", gserrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	lock, err := flock.Acquire(ctx, filepath.Join(s.dir, constants.StateLockFileName), LockTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	st, err := s.read(repoPath)
	if err != nil {
		if !errors.Is(err, gserrors.ErrStateCorrupt) {
			return err
		}
		// A corrupt file is replaced rather than blocking every later action.
		st = &State{RepoPath: repoPath}
	}

	fn(st)
	st.RepoPath = repoPath
	st.UpdatedAt = s.clock.Now().UTC()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return atomicWrite(s.statePath(repoPath), data)
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
