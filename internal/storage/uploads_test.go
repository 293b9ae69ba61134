package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadRequest(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}

	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("failed to read form file: %v", err)
	}
	return file, header
}

func TestSaveAndDelete(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("NewUploadStore() error = %v", err)
	}

	file, header := uploadRequest(t, "photo.png", []byte("fake png bytes"))
	defer file.Close()

	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("Save() url = %q, want /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("Save() url = %q, want .png suffix", url)
	}

	saved := filepath.Join(store.Dir(), strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(saved); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	if err := store.Delete(url); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(saved); !os.IsNotExist(err) {
		t.Error("file should be removed after Delete()")
	}
}

func TestSaveRejectsBadExtension(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("NewUploadStore() error = %v", err)
	}

	file, header := uploadRequest(t, "script.exe", []byte("nope"))
	defer file.Close()

	if _, err := store.Save(file, header); err == nil {
		t.Error("Save() should reject a .exe upload")
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), "/uploads", 8)
	if err != nil {
		t.Fatalf("NewUploadStore() error = %v", err)
	}

	file, header := uploadRequest(t, "big.png", bytes.Repeat([]byte("x"), 64))
	defer file.Close()

	if _, err := store.Save(file, header); err == nil {
		t.Error("Save() should reject an oversized upload")
	}
}

func TestDeleteIgnoresForeignURLs(t *testing.T) {
	store, err := NewUploadStore(t.TempDir(), "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("NewUploadStore() error = %v", err)
	}

	if err := store.Delete("/icons/account_circle_black.svg"); err != nil {
		t.Errorf("Delete() on a foreign URL should be a no-op, got %v", err)
	}
}
