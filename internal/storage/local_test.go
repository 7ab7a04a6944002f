package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("imagen", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["imagen"][0]
}

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	stored, err := store.Save(context.Background(), fileHeader(t, "perfil.png", "fake-png-bytes"))
	require.NoError(t, err)

	assert.NotEmpty(t, stored.PublicID)
	assert.True(t, strings.HasPrefix(stored.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.URL, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, stored.PublicID+".png"))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(data))
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), fileHeader(t, "malicioso.exe", "mz"))
	assert.Error(t, err)
}
