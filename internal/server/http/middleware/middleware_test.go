package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/zervix/marketplace/internal/pkg/auth"
	testhelpers "github.com/zervix/marketplace/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequired(t *testing.T) {
	cases := []struct {
		name       string
		parser     testhelpers.TokenParserStub
		withToken  bool
		wantStatus int
	}{
		{"missing token", testhelpers.TokenParserStub{}, false, http.StatusUnauthorized},
		{"invalid token", testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}, true, http.StatusUnauthorized},
		{"parser failure", testhelpers.TokenParserStub{Err: context.DeadlineExceeded}, true, http.StatusInternalServerError},
		{"valid token", testhelpers.TokenParserStub{ID: 42}, true, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var storedID int64
			router := gin.New()
			router.Use(AuthRequired(tc.parser))
			router.GET("/", func(c *gin.Context) {
				if v, ok := c.Get(UserIDContextKey); ok {
					storedID = v.(int64)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.withToken {
				req.Header.Set("Authorization", "Bearer token")
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && storedID != 42 {
				t.Fatalf("expected user id 42 in context, got %d", storedID)
			}
		})
	}
}

func TestSetAuthCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthCookie(c, "token")
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	result := recorder.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Name != authCookieName || cookies[0].Value != "token" {
		t.Fatalf("expected %s cookie with token, got %+v", authCookieName, cookies)
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestDecompressRequest(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	t.Run("gzip body is transparently decoded", func(t *testing.T) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte("payload"))
		_ = gz.Close()

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
		req.Header.Set("Content-Encoding", "gzip")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if body != "payload" {
			t.Fatalf("expected decompressed payload, got %q", body)
		}
	})

	t.Run("plain body passes through", func(t *testing.T) {
		body = ""
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plain")))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if body != "plain" {
			t.Fatalf("expected plain body, got %q", body)
		}
	})

	t.Run("corrupt gzip body is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
		req.Header.Set("Content-Encoding", "gzip")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log record, got %q: %v", buf.String(), err)
	}
	if record["method"] != http.MethodGet || record["path"] != "/ping" {
		t.Fatalf("unexpected request attributes: %v", record)
	}
	if record["status"] != float64(http.StatusOK) {
		t.Fatalf("status = %v, want 200", record["status"])
	}
	if record["bytes"] != float64(len("pong")) {
		t.Fatalf("bytes = %v, want %d", record["bytes"], len("pong"))
	}
}
