package mediaservice

import "errors"

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrTypeNotAllowed = errors.New("file type not allowed")
	ErrInvalidName    = errors.New("invalid file name")
)

// MediaService stores uploads under a per-user local directory and, when an
// external media host is configured, relays them there as well.
type MediaService struct {
	store    *LocalStore
	uploader *Uploader
}

// New wires the local store with an optional uploader; pass nil when no media
// host credentials are configured.
func New(store *LocalStore, uploader *Uploader) *MediaService {
	return &MediaService{store: store, uploader: uploader}
}

func (s *MediaService) Store() *LocalStore {
	return s.store
}

// RemoteEnabled reports whether uploads are also relayed to the external
// media host.
func (s *MediaService) RemoteEnabled() bool {
	return s.uploader != nil
}

func (s *MediaService) Uploader() *Uploader {
	return s.uploader
}
