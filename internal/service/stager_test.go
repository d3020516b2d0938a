package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mechgenz/mechgenz-api/internal/dto"
)

type memStore struct {
	files    map[string][]byte
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) Save(name string, data []byte) error {
	if s.failSave {
		return fmt.Errorf("disk full")
	}
	s.files[name] = data
	return nil
}

func (s *memStore) Read(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return data, nil
}

func (s *memStore) Open(name string) (*os.File, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	tmp, err := os.CreateTemp("", "attachment-test-*"+filepath.Ext(name))
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		tmp.Close()
		return nil, err
	}
	return tmp, nil
}

func (s *memStore) Delete(name string) error {
	delete(s.files, name)
	return nil
}

func (s *memStore) Exists(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *memStore) Size(name string) (int64, error) {
	data, ok := s.files[name]
	if !ok {
		return 0, fmt.Errorf("not found")
	}
	return int64(len(data)), nil
}

func TestStagerAcceptsAllowedFiles(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{})

	refs, err := stager.StageAttachments([]dto.UploadedFile{
		{Filename: "quote.pdf", ContentType: "application/pdf", Content: []byte("pdf-bytes")},
		{Filename: "site plan.jpg", ContentType: "image/jpeg", Content: []byte("jpg-bytes")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 2)

	savedPattern := regexp.MustCompile(`^[0-9a-f]{8}_`)
	for _, ref := range refs {
		require.Regexp(t, savedPattern, ref.SavedName)
		require.True(t, store.Exists(ref.SavedName))
	}
	require.Equal(t, "quote.pdf", refs[0].OriginalName)
	require.Equal(t, int64(len("pdf-bytes")), refs[0].FileSize)
}

func TestStagerSkipsEmptyFiles(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{})

	refs, err := stager.StageAttachments([]dto.UploadedFile{
		{Filename: "empty.txt", ContentType: "text/plain", Content: nil},
		{Filename: "real.txt", ContentType: "text/plain", Content: []byte("content")},
	})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "real.txt", refs[0].OriginalName)
}

func TestStagerRejectsDisallowedExtension(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{})

	_, err := stager.StageAttachments([]dto.UploadedFile{
		{Filename: "ok.pdf", ContentType: "application/pdf", Content: []byte("pdf")},
		{Filename: "malware.exe", ContentType: "application/octet-stream", Content: []byte("bin")},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), ".exe")
	// the first file staged before the rejection must be cleaned up
	require.Empty(t, store.files)
}

func TestStagerRejectsOversizedFile(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{MaxFileSize: 16})

	_, err := stager.StageAttachments([]dto.UploadedFile{
		{Filename: "big.pdf", ContentType: "application/pdf", Content: []byte(strings.Repeat("x", 32))},
	})
	require.Error(t, err)
	require.Empty(t, store.files)
}

func TestStagerGalleryImageNaming(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{})

	saved, err := stager.StageGalleryImage("hero_main_banner", dto.UploadedFile{
		Filename:    "Banner.PNG",
		ContentType: "image/png",
		Content:     []byte("png-bytes"),
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^hero_main_banner_[0-9a-f]{8}\.png$`), saved)
	require.True(t, store.Exists(saved))
}

func TestStagerGalleryRejectsNonImage(t *testing.T) {
	store := newMemStore()
	stager := NewStager(store, zap.NewNop(), StagerConfig{})

	_, err := stager.StageGalleryImage("logo_main", dto.UploadedFile{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Content:     []byte("pdf"),
	})
	require.Error(t, err)
	require.Empty(t, store.files)
}
