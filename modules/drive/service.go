package drive

import (
	"context"

	domain "github.com/example/drive-gateway-demo/domain/drive"
)

// Provider abstracts the storage provider's query and download endpoints.
// *Client is the production implementation.
type Provider interface {
	ListFolder(ctx context.Context, folderID string) (*domain.FileList, error)
	FindByName(ctx context.Context, folderID, name string) (*domain.FileList, error)
	GetFile(ctx context.Context, id string) (*domain.File, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

// Service translates gateway operations into provider calls. Calls are
// issued strictly in sequence and the first failure ends the request.
type Service struct {
	provider Provider
	folderID string
}

// NewService creates a gateway service scoped to one folder.
func NewService(provider Provider, folderID string) *Service {
	return &Service{
		provider: provider,
		folderID: folderID,
	}
}

// List returns the folder's entries in provider order. No sort is applied.
func (s *Service) List(ctx context.Context) ([]domain.File, error) {
	list, err := s.provider.ListFolder(ctx, s.folderID)
	if err != nil {
		return nil, err
	}
	return list.Files, nil
}

// Resolve finds the entry matching name and follows a shortcut reference to
// its target's metadata. The first match is authoritative; duplicates are
// ignored silently. The returned entry is always content, never a shortcut.
func (s *Service) Resolve(ctx context.Context, name string) (*domain.File, error) {
	list, err := s.provider.FindByName(ctx, s.folderID, name)
	if err != nil {
		return nil, err
	}
	if len(list.Files) == 0 {
		return nil, ErrFileNotFound
	}

	match := &list.Files[0]
	if !match.IsShortcut() {
		return match, nil
	}
	return s.provider.GetFile(ctx, match.ShortcutDetails.TargetID)
}

// Content pairs resolved file metadata with the provider's exact bytes.
type Content struct {
	Meta *domain.File
	Data []byte
}

// Fetch resolves name and downloads the resolved file's content verbatim.
// A shortcut's own id is never used for the download.
func (s *Service) Fetch(ctx context.Context, name string) (*Content, error) {
	meta, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err := s.provider.Download(ctx, meta.ID)
	if err != nil {
		return nil, err
	}

	return &Content{Meta: meta, Data: data}, nil
}
