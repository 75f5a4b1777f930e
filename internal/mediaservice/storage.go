package mediaservice

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// allowedExtensions is the accepted image/video set.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".wmv":  true,
	".webm": true,
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// LocalStore lays files out as <root>/<user_id>/<filename>.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes the upload under the user's directory and returns the path
// relative to the store root. The file name is reduced to its base so a
// crafted name cannot escape the directory.
func (s *LocalStore) Save(userID int, filename string, r io.Reader) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return "", ErrInvalidName
	}

	if !AllowedFile(name) {
		return "", ErrTypeNotAllowed
	}

	dir := filepath.Join(s.root, strconv.Itoa(userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}

	return filepath.Join(strconv.Itoa(userID), name), nil
}

// Resolve maps a request path to an absolute file path inside the store root.
// Paths that escape the root or point at nothing return ErrFileNotFound.
func (s *LocalStore) Resolve(relPath string) (string, error) {
	clean := filepath.Clean("/" + relPath)
	abs := filepath.Join(s.root, clean)

	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	abs, err = filepath.Abs(abs)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", ErrFileNotFound
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}

	return abs, nil
}

// Open returns a reader for a previously saved file.
func (s *LocalStore) Open(relPath string) (*os.File, error) {
	abs, err := s.Resolve(relPath)
	if err != nil {
		return nil, err
	}

	return os.Open(abs)
}
