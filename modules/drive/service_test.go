package drive

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/drive-gateway-demo/domain/drive"
)

const testFolderID = "folder123"

// mockProvider implements Provider for testing and records every call.
type mockProvider struct {
	listResult *domain.FileList
	listErr    error

	findResult *domain.FileList
	findErr    error

	getResult *domain.File
	getErr    error

	downloads   map[string][]byte
	downloadErr error

	calls []string
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		downloads: make(map[string][]byte),
	}
}

func (m *mockProvider) ListFolder(_ context.Context, folderID string) (*domain.FileList, error) {
	m.calls = append(m.calls, "ListFolder:"+folderID)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockProvider) FindByName(_ context.Context, folderID, name string) (*domain.FileList, error) {
	m.calls = append(m.calls, "FindByName:"+folderID+":"+name)
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.findResult, nil
}

func (m *mockProvider) GetFile(_ context.Context, id string) (*domain.File, error) {
	m.calls = append(m.calls, "GetFile:"+id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResult, nil
}

func (m *mockProvider) Download(_ context.Context, id string) ([]byte, error) {
	m.calls = append(m.calls, "Download:"+id)
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	data, ok := m.downloads[id]
	if !ok {
		return nil, fmt.Errorf("no content for id %s", id)
	}
	return data, nil
}

func TestService_List_PreservesProviderOrder(t *testing.T) {
	provider := newMockProvider()
	provider.listResult = &domain.FileList{Files: []domain.File{
		{ID: "3", Name: "zebra.txt", MimeType: "text/plain"},
		{ID: "1", Name: "apple.txt", MimeType: "text/plain"},
		{ID: "2", Name: "mango.txt", MimeType: "text/plain"},
	}}
	service := NewService(provider, testFolderID)

	files, err := service.List(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "zebra.txt", files[0].Name)
	assert.Equal(t, "apple.txt", files[1].Name)
	assert.Equal(t, "mango.txt", files[2].Name)
	assert.Equal(t, []string{"ListFolder:" + testFolderID}, provider.calls)
}

func TestService_List_UpstreamFailure(t *testing.T) {
	provider := newMockProvider()
	provider.listErr = ErrListFailed
	service := NewService(provider, testFolderID)

	_, err := service.List(context.Background())
	assert.ErrorIs(t, err, ErrListFailed)
}

func TestService_Resolve_NotFound(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{}
	service := NewService(provider, testFolderID)

	_, err := service.Resolve(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestService_Resolve_FirstMatchWins(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{ID: "first", Name: "dup.txt", MimeType: "text/plain"},
		{ID: "second", Name: "dup.txt", MimeType: "text/plain"},
	}}
	service := NewService(provider, testFolderID)

	meta, err := service.Resolve(context.Background(), "dup.txt")
	require.NoError(t, err)
	assert.Equal(t, "first", meta.ID)
}

func TestService_Resolve_FollowsShortcut(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{
			ID:              "shortcut-id",
			Name:            "report.pdf",
			MimeType:        "application/vnd.google-apps.shortcut",
			ShortcutDetails: &domain.ShortcutDetails{TargetID: "target-id"},
		},
	}}
	provider.getResult = &domain.File{ID: "target-id", Name: "report.pdf", MimeType: "application/pdf"}
	service := NewService(provider, testFolderID)

	meta, err := service.Resolve(context.Background(), "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "target-id", meta.ID)
	assert.Equal(t, "application/pdf", meta.MimeType)
	assert.Contains(t, provider.calls, "GetFile:target-id")
}

func TestService_Resolve_ShortcutTargetFetchFailure(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{ID: "shortcut-id", Name: "a.txt", ShortcutDetails: &domain.ShortcutDetails{TargetID: "gone"}},
	}}
	provider.getErr = ErrTargetFetchFailed
	service := NewService(provider, testFolderID)

	_, err := service.Resolve(context.Background(), "a.txt")
	// A broken shortcut is an upstream failure, not a missing file.
	assert.ErrorIs(t, err, ErrTargetFetchFailed)
	assert.NotErrorIs(t, err, ErrFileNotFound)
}

func TestService_Fetch_DownloadsTargetNotShortcut(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{
			ID:              "shortcut-id",
			Name:            "photo.png",
			MimeType:        "application/vnd.google-apps.shortcut",
			ShortcutDetails: &domain.ShortcutDetails{TargetID: "target-id"},
		},
	}}
	provider.getResult = &domain.File{ID: "target-id", Name: "photo.png", MimeType: "image/png"}
	provider.downloads["target-id"] = []byte("png-bytes")
	service := NewService(provider, testFolderID)

	content, err := service.Fetch(context.Background(), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, []byte("png-bytes"), content.Data)
	assert.Equal(t, "image/png", content.Meta.MimeType)

	// Exactly two provider calls follow the search: target metadata fetch,
	// then target download. The shortcut's own id is never downloaded.
	require.Len(t, provider.calls, 3)
	assert.Equal(t, "FindByName:"+testFolderID+":photo.png", provider.calls[0])
	assert.Equal(t, "GetFile:target-id", provider.calls[1])
	assert.Equal(t, "Download:target-id", provider.calls[2])
}

func TestService_Fetch_PlainFile(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{ID: "file-id", Name: "notes.txt", MimeType: "text/plain"},
	}}
	provider.downloads["file-id"] = []byte("hello")
	service := NewService(provider, testFolderID)

	content, err := service.Fetch(context.Background(), "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), content.Data)
	// No metadata fetch happens for a direct (non-shortcut) match.
	assert.Equal(t, []string{
		"FindByName:" + testFolderID + ":notes.txt",
		"Download:file-id",
	}, provider.calls)
}

func TestService_Fetch_DownloadFailure(t *testing.T) {
	provider := newMockProvider()
	provider.findResult = &domain.FileList{Files: []domain.File{
		{ID: "file-id", Name: "notes.txt", MimeType: "text/plain"},
	}}
	provider.downloadErr = ErrDownloadFailed
	service := NewService(provider, testFolderID)

	_, err := service.Fetch(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, ErrDownloadFailed)
}
