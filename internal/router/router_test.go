package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog/config"
	"catalog/internal/auth"
	"catalog/internal/domain"
	"catalog/internal/middleware"
	"catalog/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUploader struct{ folder string }

func (f *fakeUploader) UploadImage(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	f.folder = folder
	_, _ = io.Copy(io.Discard, file)
	return "https://img.example.com/" + folder + "/" + publicID + ".png", nil
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newTestConfig(t *testing.T) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		Server:    config.ServerConfig{Env: "test"},
		JWT:       config.JWTConfig{AccessSecret: "test-secret", AccessExpiry: time.Hour, Issuer: "catalog"},
		Admin:     config.AdminConfig{Email: "admin@example.com", PasswordHash: string(hash)},
		Upload:    config.UploadConfig{Folder: "catalog", MaxSizeBytes: 1 << 20},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		RateLimit: config.RateLimitConfig{EnquiryLimit: 100, EnquiryWindow: time.Minute},
	}
}

func newTestServer(t *testing.T, mutate func(*Deps)) *testServer {
	cfg := newTestConfig(t)
	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.EnquiryLimit, cfg.RateLimit.EnquiryWindow)
	t.Cleanup(limiter.Stop)
	d := Deps{Config: cfg, DB: testutil.NewAccess(t), EnquiryLimiter: limiter}
	if mutate != nil {
		mutate(&d)
	}
	token, _, err := auth.GenerateAccessToken(&cfg.JWT, cfg.Admin.Email)
	require.NoError(t, err)
	return &testServer{t: t, engine: Setup(d), token: token}
}

func (s *testServer) do(method, path string, body any, admin bool) (int, map[string]any) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	out := map[string]any{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

// create posts an admin create and returns the new row's id.
func (s *testServer) create(path string, body any) string {
	s.t.Helper()
	code, out := s.do(http.MethodPost, path, body, true)
	require.Equal(s.t, http.StatusCreated, code, out)
	return data(s.t, out)["id"].(string)
}

func data(t *testing.T, out map[string]any) map[string]any {
	t.Helper()
	d, ok := out["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", out)
	return d
}

func list(t *testing.T, out map[string]any) []any {
	t.Helper()
	d, ok := out["data"].([]any)
	require.True(t, ok, "data is not a list: %v", out)
	return d
}

func TestCatalogEndToEnd(t *testing.T) {
	s := newTestServer(t, nil)

	navbarID := s.create("/api/admin/navbar-category", gin.H{"name": "Cameras", "order": 1})
	categoryID := s.create("/api/admin/category", gin.H{"name": "Indoor", "navbar_category_id": navbarID})
	subID := s.create("/api/admin/subcategory", gin.H{"name": "PTZ", "category_id": categoryID})
	s.create("/api/admin/product", gin.H{
		"name":               "Model X",
		"description":        "4K PTZ camera",
		"key_features":       []string{"4K", "30x zoom"},
		"image1":             "https://img.example.com/x.jpg",
		"navbar_category_id": navbarID,
		"category_id":        categoryID,
		"subcategory_id":     subID,
	})

	code, out := s.do(http.MethodGet, "/api/product/by-slug/model-x", nil, false)
	require.Equal(t, http.StatusOK, code)
	p := data(t, out)
	assert.Equal(t, "Model X", p["name"])
	assert.Equal(t, "Cameras", p["navbar_category"].(map[string]any)["name"])
	assert.Equal(t, "Indoor", p["category"].(map[string]any)["name"])
	assert.Equal(t, "PTZ", p["subcategory"].(map[string]any)["name"])
	assert.Equal(t, []any{"4K", "30x zoom"}, p["key_features"])

	code, out = s.do(http.MethodGet, "/api/category/by-navbar/cameras", nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
	assert.Equal(t, "cameras", out["navbarCategory"].(map[string]any)["slug"])

	code, out = s.do(http.MethodGet, "/api/subcategory/by-category/indoor", nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
	assert.Equal(t, "ptz", list(t, out)[0].(map[string]any)["slug"])
	cat := out["category"].(map[string]any)
	assert.Equal(t, categoryID, cat["id"])
	assert.Equal(t, "Indoor", cat["name"])
	assert.Equal(t, "indoor", cat["slug"])
	nav := cat["navbar_category"].(map[string]any)
	assert.Equal(t, navbarID, nav["id"])
	assert.Equal(t, "Cameras", nav["name"])
	assert.Equal(t, "cameras", nav["slug"])

	code, out = s.do(http.MethodGet, "/api/product/by-category/indoor", nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
	cat = out["category"].(map[string]any)
	assert.Equal(t, "indoor", cat["slug"])
	assert.Equal(t, "Cameras", cat["navbar_category"].(map[string]any)["name"])
	listed := list(t, out)[0].(map[string]any)
	assert.Equal(t, "model-x", listed["slug"])
	assert.Equal(t, "Indoor", listed["category"].(map[string]any)["name"])
	assert.Equal(t, "Cameras", listed["category"].(map[string]any)["navbar_category"].(map[string]any)["name"])
	assert.Equal(t, "PTZ", listed["subcategory"].(map[string]any)["name"])

	code, out = s.do(http.MethodGet, "/api/product/by-subcategory/ptz", nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
	sub := out["subcategory"].(map[string]any)
	assert.Equal(t, "Indoor", sub["category"].(map[string]any)["name"])

	code, out = s.do(http.MethodGet, "/api/product?category="+categoryID, nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])

	// Order-only update keeps the slug.
	code, out = s.do(http.MethodPut, "/api/admin/navbar-category/"+navbarID, gin.H{"order": 7}, true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cameras", data(t, out)["slug"])
	assert.EqualValues(t, 7, data(t, out)["order"])

	// Duplicate product name in the same scope.
	code, out = s.do(http.MethodPost, "/api/admin/product", gin.H{
		"name": "model x", "description": "dup", "image1": "https://img.example.com/y.jpg",
		"navbar_category_id": navbarID, "category_id": categoryID, "subcategory_id": subID,
	}, true)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Product with this name already exists in this category", out["error"])

	// Parent delete is blocked while children exist.
	code, _ = s.do(http.MethodDelete, "/api/admin/category/"+categoryID, nil, true)
	assert.Equal(t, http.StatusConflict, code)

	// Deactivating the navbar hides its categories from public reads.
	code, _ = s.do(http.MethodPut, "/api/admin/navbar-category/"+navbarID, gin.H{"is_active": false}, true)
	require.Equal(t, http.StatusOK, code)
	code, out = s.do(http.MethodGet, "/api/category", nil, false)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, out["count"])
	code, out = s.do(http.MethodGet, "/api/category/by-navbar/cameras", nil, false)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Navbar category is not active", out["error"])

	code, out = s.do(http.MethodGet, "/api/admin/navbar-category", nil, true)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"], "admin lists include inactive rows")
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t, nil)
	for _, path := range []string{"/api/admin/navbar-category", "/api/admin/dashboard", "/api/admin/notifications"} {
		code, out := s.do(http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "Unauthorized - No token provided", out["error"])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	code, _ := s.do(http.MethodPost, "/api/admin/navbar-category", gin.H{"name": "Cameras"}, false)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, out := s.do(http.MethodGet, "/api/navbar-category", nil, false)
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, out["count"])
}

func TestLoginIssuesUsableToken(t *testing.T) {
	s := newTestServer(t, nil)

	code, out := s.do(http.MethodPost, "/api/admin/login", gin.H{"email": "admin@example.com", "password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", out["error"])

	body := strings.NewReader(`{"email":"admin@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnquiryFlow(t *testing.T) {
	s := newTestServer(t, nil)

	code, out := s.do(http.MethodPost, "/api/product-enquiry", gin.H{
		"productName": "Model X", "name": "Ada", "email": "ADA@example.com", "mobile": "0700", "description": "Price?",
	}, false)
	require.Equal(t, http.StatusCreated, code, out)
	assert.Equal(t, "Enquiry submitted successfully", out["message"])
	id := data(t, out)["id"].(string)
	assert.Equal(t, "ada@example.com", data(t, out)["email"])

	code, out = s.do(http.MethodPost, "/api/contact-enquiry", gin.H{"name": "Ada"}, false)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields are required", out["error"])

	code, out = s.do(http.MethodGet, "/api/admin/notifications", nil, true)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["unreadCount"])
	n := list(t, out)[0].(map[string]any)
	assert.Equal(t, domain.NotificationProductEnquiry, n["type"])
	assert.Equal(t, id, n["related_id"])

	// Invalid status is rejected without touching the row.
	code, out = s.do(http.MethodPut, "/api/admin/product-enquiry/"+id, gin.H{"status": "closed"}, true)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid status", out["error"])
	code, out = s.do(http.MethodGet, "/api/admin/product-enquiry/"+id, nil, true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.StatusPending, data(t, out)["status"])

	code, _ = s.do(http.MethodPut, "/api/admin/product-enquiry/"+id, gin.H{"status": "resolved"}, true)
	require.Equal(t, http.StatusOK, code)
	code, out = s.do(http.MethodGet, "/api/admin/product-enquiry?status=resolved", nil, true)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])
	code, _ = s.do(http.MethodGet, "/api/admin/product-enquiry?status=bogus", nil, true)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPut, "/api/admin/notifications", nil, true)
	require.Equal(t, http.StatusOK, code)
	code, out = s.do(http.MethodGet, "/api/admin/notifications", nil, true)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, out["unreadCount"])

	code, out = s.do(http.MethodGet, "/api/admin/dashboard", nil, true)
	require.Equal(t, http.StatusOK, code)
	overview := data(t, out)["overview"].(map[string]any)
	assert.EqualValues(t, 1, overview["totalProductEnquiries"])
	assert.EqualValues(t, 0, overview["pendingProductEnquiries"])
}

func TestEnquiryRateLimit(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.EnquiryLimiter = middleware.NewInMemoryRateLimiter(1, time.Minute)
		t.Cleanup(d.EnquiryLimiter.Stop)
	})
	body := gin.H{"name": "Ada", "email": "a@b.c", "subject": "Hi", "message": "Hello"}

	code, _ := s.do(http.MethodPost, "/api/contact-enquiry", body, false)
	assert.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/contact-enquiry", body, false)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

// contactFrom posts a contact enquiry carrying the given X-Forwarded-For.
func (s *testServer) contactFrom(forwardedFor string) int {
	s.t.Helper()
	b, err := json.Marshal(gin.H{"name": "Ada", "email": "a@b.c", "subject": "Hi", "message": "Hello"})
	require.NoError(s.t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/contact-enquiry", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w.Code
}

func TestEnquiryRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.EnquiryLimiter = middleware.NewInMemoryRateLimiter(1, time.Minute)
		t.Cleanup(d.EnquiryLimiter.Stop)
	})

	assert.Equal(t, http.StatusCreated, s.contactFrom("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, s.contactFrom("203.0.113.2"))
}

func TestTrustedProxyForwardsClientIP(t *testing.T) {
	s := newTestServer(t, func(d *Deps) {
		d.Config.Server.TrustedProxies = []string{"192.0.2.0/24"}
		d.EnquiryLimiter = middleware.NewInMemoryRateLimiter(1, time.Minute)
		t.Cleanup(d.EnquiryLimiter.Stop)
	})

	// httptest requests come from 192.0.2.1, a trusted proxy here.
	assert.Equal(t, http.StatusCreated, s.contactFrom("203.0.113.1"))
	assert.Equal(t, http.StatusCreated, s.contactFrom("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, s.contactFrom("203.0.113.1"))
}

func TestUpload(t *testing.T) {
	up := &fakeUploader{}
	s := newTestServer(t, func(d *Deps) { d.Uploader = up })

	upload := func(filename string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("\x89PNG fake"))
		require.NoError(t, mw.WriteField("folder", "products"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+s.token)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		return w
	}

	w := upload("camera.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, true, out["success"])
	assert.True(t, strings.HasPrefix(out["url"].(string), "https://img.example.com/catalog/products/img_"))
	assert.Equal(t, "catalog/products", up.folder)

	w = upload("notes.txt")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadNotConfigured(t *testing.T) {
	s := newTestServer(t, nil)
	code, _ := s.do(http.MethodPost, "/api/admin/upload", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	code, out := s.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", out["database"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_http_requests_total")
}

func TestNotificationSocketRejectsAnonymous(t *testing.T) {
	s := newTestServer(t, nil)
	code, out := s.do(http.MethodGet, "/ws/admin/notifications", nil, false)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized - No token provided", out["error"])
}
