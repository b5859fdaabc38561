package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	NewHandler(store).RegisterAdminRoutes(app, func(c *fiber.Ctx) error { return c.Next() })

	body, contentType := multipartBody(t, "image", "watch.jpg", []byte("jpegbytes"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}

	var decoded map[string]interface{}
	json.NewDecoder(res.Body).Decode(&decoded)
	path, _ := decoded["path"].(string)
	if !strings.HasPrefix(path, URLPrefix+"/") || !strings.HasSuffix(path, "-watch.jpg") {
		t.Errorf("path = %q, want /uploads/<millis>-watch.jpg", path)
	}

	// the file should exist on disk
	name := strings.TrimPrefix(path, URLPrefix+"/")
	if _, err := os.Stat(filepath.Join(store.Dir(), name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestUploadFile_MissingField(t *testing.T) {
	store, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	NewHandler(store).RegisterAdminRoutes(app, func(c *fiber.Ctx) error { return c.Next() })

	req := httptest.NewRequest("POST", "/api/upload", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	name := "123-x.jpg"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store.Remove(URLPrefix + "/" + name)
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Error("file should have been removed")
	}

	// non-local references are ignored
	store.Remove("https://cdn.example.com/x.jpg")
	store.Remove("data:image/png;base64,xxxx")
	store.Remove(URLPrefix + "/does-not-exist.jpg") // silent
}
