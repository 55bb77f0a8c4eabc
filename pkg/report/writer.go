package report

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Writer appends rendered documents to the job summary file.
type Writer struct {
	fs afero.Afero
}

// NewWriter creates a new Writer on fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: afero.Afero{Fs: fs}}
}

// Append adds document to the end of the summary file at path, creating
// the file when needed.
func (w *Writer) Append(path string, document string) error {
	file, err := w.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(document); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}
