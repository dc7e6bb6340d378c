package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FileStore keeps viewer sessions as one JSON file each, for single-instance
// deployments where Redis would be overkill. Files are mode 0600 under a
// directory created with 0700, since a session records which network a user
// was looking at.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore opens a session store rooted at dir, defaulting to
// ~/.config/bionet/sessions when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "bionet", "sessions")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// pathFor validates the ID before building a path. Session IDs arrive as
// raw cookie values, so anything that is not a UUID is rejected here rather
// than allowed to traverse out of the session directory.
func (s *FileStore) pathFor(sessionID string) (string, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}
	return filepath.Join(s.dir, sessionID+".json"), nil
}

// readSession loads and decodes one session file. A decode failure is
// reported so the caller can decide whether to drop the file.
func readSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &sess, nil
}

// Get returns the session or nil when absent. An expired session is removed
// and reported as absent, and a malformed ID is treated the same way so the
// caller issues a fresh session.
func (s *FileStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.pathFor(sessionID)
	if err != nil {
		return nil, nil
	}
	sess, err := readSession(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		os.Remove(path)
		return nil, nil
	}
	return sess, nil
}

// Set writes the session to its file, replacing any previous state.
func (s *FileStore) Set(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(session.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Delete removes the session file. Deleting a missing or malformed session
// is not an error.
func (s *FileStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(sessionID)
	if err != nil {
		return nil
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Cleanup sweeps the directory, dropping expired and unreadable entries.
func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		sess, err := readSession(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil || sess.IsExpired() {
			os.Remove(path)
		}
	}
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
