package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/udanya23/job-portal/internal/domain"
	"github.com/udanya23/job-portal/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testJWTKey = []byte("test-jwt-secret-at-least-32-chars!!")

func newGuardedRouter(key []byte) (*gin.Engine, *domain.Claims) {
	seen := &domain.Claims{}
	r := gin.New()
	r.GET("/secure", middleware.Auth(key), func(c *gin.Context) {
		if claims := middleware.ClaimsFromContext(c); claims != nil {
			*seen = *claims
		}
		c.Status(http.StatusOK)
	})
	return r, seen
}

func sign(t *testing.T, key []byte, claims domain.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingHeader(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	rec := get(r, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	want := `{"message":"No token provided"}`
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestAuth_NotBearer(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	rec := get(r, "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	rec := get(r, "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	want := `{"message":"Invalid token or token is expired"}`
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	token := sign(t, testJWTKey, domain.Claims{
		ID: "user1", Email: "a@b.com", Role: domain.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	rec := get(r, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_WrongKey(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	token := sign(t, []byte("another-key-that-is-32-chars-long!!"), domain.Claims{
		ID: "user1", Email: "a@b.com", Role: domain.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	rec := get(r, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_EmptySubject(t *testing.T) {
	r, _ := newGuardedRouter(testJWTKey)
	token := sign(t, testJWTKey, domain.Claims{
		Email: "a@b.com", Role: domain.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	rec := get(r, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_ValidToken_StoresClaims(t *testing.T) {
	r, seen := newGuardedRouter(testJWTKey)
	token := sign(t, testJWTKey, domain.Claims{
		ID: "user1", Email: "a@b.com", Role: domain.RoleRecruiter, Name: "R",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	rec := get(r, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if seen.ID != "user1" || seen.Email != "a@b.com" || seen.Role != domain.RoleRecruiter || seen.Name != "R" {
		t.Errorf("claims = %+v", seen)
	}
}
