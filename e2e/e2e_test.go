//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"gorm.io/gorm"
	"profile-service/internal/config"
	"profile-service/internal/db"
	profiledomain "profile-service/internal/domain/profile"
	profilerepo "profile-service/internal/repository/profile"
	"profile-service/internal/storage/upload"
	"profile-service/internal/transport/httpserver"
	"profile-service/internal/transport/httpserver/handler"
	"profile-service/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	dir    string
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Discard()
	dir := t.TempDir()
	cfg := config.Config{
		DB:                 config.DBConfig{DSN: dsn},
		CORSAllowedOrigins: []string{"*"},
		Upload:             config.UploadConfig{Dir: dir, Backend: config.UploadBackendLocal},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(context.Background(), dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	sink, err := upload.New(context.Background(), cfg.Upload)
	if err != nil {
		t.Fatalf("upload sink: %v", err)
	}

	profiles := profiledomain.NewService(profilerepo.NewPostgres(dbConn), sink)
	handlers := handler.New(profiles, sink, 0, log)

	router := httpserver.NewRouter(cfg, handlers, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn, dir: dir}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE profiles RESTART IDENTITY CASCADE",
	).Error
}

type filePart struct {
	field    string
	filename string
	content  string
}

func postMultipart(t *testing.T, client *http.Client, target string, fields map[string]string, files ...filePart) (*http.Response, []byte) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, file.content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, target, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return do(t, client, req)
}

func sendForm(t *testing.T, client *http.Client, method, target string, values url.Values) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, target, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, client, req)
}

func get(t *testing.T, client *http.Client, method, target string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return do(t, client, req)
}

func do(t *testing.T, client *http.Client, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode %s: %v", string(data), err)
	}
}

func TestProfilesE2E(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := env.server.Client()
	base := env.server.URL + "/profiles"

	resp, body := postMultipart(t, client, base, map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d body=%s", resp.StatusCode, body)
	}

	var created map[string]interface{}
	decode(t, body, &created)
	if created["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", created["id"])
	}
	for _, key := range []string{"profile_image", "resume_file", "project_image_url"} {
		if created[key] != nil {
			t.Fatalf("expected %s to be null, got %v", key, created[key])
		}
	}
	for _, key := range []string{"job_alerts", "relocate", "remote", "hybrid", "currently_working", "currently_studying"} {
		if created[key] != false {
			t.Fatalf("expected %s to be false, got %v", key, created[key])
		}
	}

	resp, body = postMultipart(t, client, base, map[string]string{
		"first_name": "Augusta",
		"last_name":  "King",
		"email":      "ada@example.com",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email status = %d body=%s", resp.StatusCode, body)
	}

	resp, body = postMultipart(t, client, base, map[string]string{
		"first_name": "Charles",
		"last_name":  "Babbage",
		"email":      "charles@example.com",
		"remote":     "true",
	}, filePart{field: "resume_file", filename: "cv.pdf", content: "difference engine"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create with file status = %d body=%s", resp.StatusCode, body)
	}
	var charles map[string]interface{}
	decode(t, body, &charles)
	resumePath, ok := charles["resume_file"].(string)
	if !ok || !strings.HasPrefix(resumePath, env.dir) {
		t.Fatalf("unexpected resume_file %v", charles["resume_file"])
	}
	if data, err := os.ReadFile(resumePath); err != nil || string(data) != "difference engine" {
		t.Fatalf("stored resume mismatch: %q err=%v", data, err)
	}

	resp, body = get(t, client, http.MethodGet, base)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list []map[string]interface{}
	decode(t, body, &list)
	if len(list) != 2 || list[0]["email"] != "ada@example.com" {
		t.Fatalf("unexpected list %v", list)
	}

	resp, body = sendForm(t, client, http.MethodPut, base+"/1", url.Values{"first_name": {"Augusta"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d body=%s", resp.StatusCode, body)
	}
	var updated map[string]interface{}
	decode(t, body, &updated)
	if updated["first_name"] != "Augusta" || updated["last_name"] != "Lovelace" {
		t.Fatalf("unexpected update result %v", updated)
	}

	resp, _ = get(t, client, http.MethodDelete, base+"/1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, _ = get(t, client, http.MethodGet, base+"/1")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}

	resp, _ = sendForm(t, client, http.MethodPut, base+"/999", url.Values{"first_name": {"Nobody"}})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update unknown status = %d", resp.StatusCode)
	}
}
