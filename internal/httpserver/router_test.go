package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greencart/internal/metrics"

	"github.com/gin-gonic/gin"
)

func TestBuildRouter_MissingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.OrderSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps); err == nil {
		t.Fatalf("expected error for missing order service")
	}
}

func TestUserAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "no token", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "bad token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer user-token") }, status: http.StatusOK},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: userCookie, Value: "user-token"}) }, status: http.StatusOK},
		{name: "seller token on user route", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: sellerCookie, Value: "seller-token"}) }, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user/is-auth", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d body=%s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSellerAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/order/seller", nil)
	req.AddCookie(&http.Cookie{Name: userCookie, Value: "user-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("buyer reached seller route: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/order/seller", nil)
	req.AddCookie(&http.Cookie{Name: sellerCookie, Value: "seller-token"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.Metrics = metrics.NewRegistry()
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	for path, want := range map[string]int{
		"/healthz": http.StatusOK,
		"/readyz":  http.StatusServiceUnavailable,
		"/metrics": http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestCORS_AllowsConfiguredOriginWithCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.AllowedOrigins = []string{"http://localhost:5173"}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/product/list", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if !strings.EqualFold(rec.Header().Get("Access-Control-Allow-Credentials"), "true") {
		t.Fatalf("credentials not allowed")
	}
}
