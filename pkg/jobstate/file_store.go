package jobstate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FileStore implements Store with a JSON file, for runners that do not
// provide a state channel of their own.
type FileStore struct {
	fs   afero.Afero
	path string
}

// NewFileStore creates a new FileStore persisting to path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: afero.Afero{Fs: fs}, path: path}
}

// Set saves value under key, creating the state file if needed.
func (s *FileStore) Set(key string, value string) error {
	state, err := s.read()
	if err != nil {
		return err
	}

	state[key] = value

	content, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := s.fs.WriteFile(s.path, content, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Get reads the value saved under key by an earlier invocation.
func (s *FileStore) Get(key string) (string, bool, error) {
	state, err := s.read()
	if err != nil {
		return "", false, err
	}

	value, found := state[key]
	return value, found, nil
}

func (s *FileStore) read() (map[string]string, error) {
	state := map[string]string{}

	content, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(content, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}

	return state, nil
}
