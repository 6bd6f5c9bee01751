package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const avatarMaxDim = 512

// AvatarStore keeps avatar images on local disk, normalized to bounded JPEGs.
type AvatarStore struct {
	dir     string
	urlBase string
}

// NewAvatarStore creates the backing directory if needed.
func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &AvatarStore{dir: dir, urlBase: "/static/avatars/"}, nil
}

// Save decodes an uploaded image, scales it down to fit 512x512 and writes it
// as a JPEG under a fresh unique name. The returned name is what gets stored
// on the user record.
func (s *AvatarStore) Save(userID uint, r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}
	img = imaging.Fit(img, avatarMaxDim, avatarMaxDim, imaging.Lanczos)

	name := fmt.Sprintf("%d_%s.jpg", userID, uuid.New().String())
	if err := imaging.Save(img, filepath.Join(s.dir, name), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return name, nil
}

// Delete removes a stored avatar. A missing file is not an error.
func (s *AvatarStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

// URL returns the public path for a stored avatar name.
func (s *AvatarStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.urlBase + name
}

// Dir returns the backing directory, used to mount the static file route.
func (s *AvatarStore) Dir() string {
	return s.dir
}
