package receipt

import (
	"My-Tax-Tracker/entities"
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Receipt{}))
	return db
}

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

type fakeStorage struct {
	objects   map[string][]byte
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, objectKey string, file *multipart.FileHeader, _ ...string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(src); err != nil {
		return err
	}
	f.objects[objectKey] = buf.Bytes()
	return nil
}

func (f *fakeStorage) GetFile(_ context.Context, objectKey string) ([]byte, error) {
	content, ok := f.objects[objectKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return content, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, objectKey)
	return nil
}

func (f *fakeStorage) BucketName() string { return "test-bucket" }

type fakeExtractor struct {
	fields map[string]string
	err    error
}

func (f *fakeExtractor) AnalyzeReceipt(context.Context, string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}
