package attachment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store copies attachment files into the attachments directory and
// keeps their records in sync.
type Store struct {
	repo Repository
	dir  string
}

// NewStore creates a Store writing files below dir.
func NewStore(repo Repository, dir string) *Store {
	return &Store{repo: repo, dir: dir}
}

// Add copies the file at sourcePath into the attachments directory and
// records it for the river. The stored name carries a random suffix so
// files with the same name never collide.
func (s *Store) Add(ctx context.Context, riverID int64, sourcePath, description string) (*Attachment, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("os.Stat(%s) > %w", sourcePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", sourcePath)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", s.dir, err)
	}

	fileName := filepath.Base(sourcePath)
	ext := filepath.Ext(fileName)
	storedName := fmt.Sprintf("%s_%s%s", strings.TrimSuffix(fileName, ext), uuid.NewString(), ext)
	storedPath := filepath.Join(s.dir, storedName)

	if err := copyFile(sourcePath, storedPath); err != nil {
		return nil, fmt.Errorf("copyFile() > %w", err)
	}

	a := &Attachment{
		RiverID:     riverID,
		FileName:    fileName,
		FilePath:    storedPath,
		FileType:    strings.ToLower(ext),
		FileSize:    info.Size(),
		Description: description,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	return a, nil
}

// Remove deletes the attachment record and its stored file. A file
// that is already gone is not an error.
func (s *Store) Remove(ctx context.Context, id int64) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("repo.FindByID() > %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("repo.Delete() > %w", err)
	}
	if err := os.Remove(a.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove(%s) > %w", a.FilePath, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("io.Copy() > %w", err)
	}
	return out.Close()
}
