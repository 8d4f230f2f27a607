package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nusantaramc/cms/config"
	"github.com/nusantaramc/cms/internal/server"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBaseURL = "http://cms.test"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newTestApp(t *testing.T, opts ...func(*config.Config)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		GinMode:        gin.TestMode,
		DBDriver:       "sqlite",
		SQLitePath:     filepath.Join(dir, "cms.db"),
		BaseURL:        testBaseURL,
		UploadDir:      filepath.Join(dir, "uploads"),
		AllowedOrigins: []string{"http://localhost:8080"},
		AdminUsername:  "admin",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := config.InitDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &testApp{router: server.NewRouter(cfg, db), db: db, cfg: cfg}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type upload struct {
	field   string
	name    string
	content []byte
}

type form struct {
	fields  [][2]string
	uploads []upload
}

func newForm() *form {
	return &form{}
}

func (f *form) field(name, value string) *form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

func (f *form) file(field, name string, content []byte) *form {
	f.uploads = append(f.uploads, upload{field: field, name: name, content: content})
	return f
}

func (f *form) encode(t *testing.T) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, kv := range f.fields {
		require.NoError(t, writer.WriteField(kv[0], kv[1]))
	}
	for _, u := range f.uploads {
		part, err := writer.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (app *testApp) do(t *testing.T, method, target string, f *form, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	contentType := ""
	if f != nil {
		body, contentType = f.encode(t)
	}

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) doJSON(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var data []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// localFile maps a rendered upload URL back to the file on disk.
func (app *testApp) localFile(t *testing.T, folder string, url any) string {
	t.Helper()
	s, ok := url.(string)
	require.True(t, ok, "expected a URL string, got %v", url)
	require.Contains(t, s, testBaseURL+"/uploads/"+folder+"/")
	return filepath.Join(app.cfg.UploadDir, folder, path.Base(s))
}

func (app *testApp) filesIn(t *testing.T, folder string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(app.cfg.UploadDir, folder))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func formatID(id any) string {
	switch v := id.(type) {
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	}
	return fmt.Sprint(id)
}
