package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded files on local disk under a configured root
// directory and hands back the relative path for storage on the entity.
type FileStore interface {
	SavePDFReport(appointmentID uuid.UUID, src io.Reader) (string, error)
	Remove(relPath string) error
	Open(relPath string) (*os.File, error)
}

type fileStore struct {
	root string
}

func NewFileStore(root string) (FileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "reports"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &fileStore{root: root}, nil
}

// SavePDFReport writes the report under reports/<appointment id>.pdf,
// replacing any previous report for the same appointment.
func (s *fileStore) SavePDFReport(appointmentID uuid.UUID, src io.Reader) (string, error) {
	relPath := filepath.Join("reports", appointmentID.String()+".pdf")

	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filepath.Join(s.root, relPath))
		return "", fmt.Errorf("write report file: %w", err)
	}
	return relPath, nil
}

func (s *fileStore) Remove(relPath string) error {
	return os.Remove(filepath.Join(s.root, relPath))
}

func (s *fileStore) Open(relPath string) (*os.File, error) {
	return os.Open(filepath.Join(s.root, relPath))
}
