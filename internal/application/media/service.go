package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidPath indicates a path outside the managed images directory
var ErrInvalidPath = errors.New("invalid image path")

// Service stores uploaded images on the local filesystem. File names embed
// the owning user's ID so a user's images can be removed in bulk when the
// account is deleted.
type Service struct {
	dir string
	now func() time.Time
}

// NewService creates the media service rooted at dir, creating it if needed
func NewService(dir string) (*Service, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve images dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &Service{dir: abs, now: time.Now}, nil
}

// Save streams an upload into the images directory and returns the public
// path the file is served under
func (s *Service) Save(userID, originalName string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("%s-%d%s", userID, s.now().UnixMilli(), ext)

	target, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/images/" + name, nil
}

// Delete removes a previously saved image given its public path. Paths that
// resolve outside the images directory are rejected.
func (s *Service) Delete(publicPath string) error {
	name := strings.TrimPrefix(filepath.ToSlash(publicPath), "/images/")
	target, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every image owned by userID
func (s *Service) DeleteAllForUser(userID string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("list images: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), userID+"-") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("delete image %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// resolve maps a bare file name to an absolute path inside the images dir,
// rejecting anything that would escape it
func (s *Service) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidPath
	}
	target := filepath.Join(s.dir, name)
	if filepath.Dir(target) != s.dir {
		return "", ErrInvalidPath
	}
	return target, nil
}
