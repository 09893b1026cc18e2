package auth

import (
	"net/http"
	"strings"

	"catalog/config"
)

// CookieName is the cookie the admin UI stores its token in.
const CookieName = "admin_token"

// Result is the outcome of an admin check. Error is set when
// IsAuthenticated is false.
type Result struct {
	IsAuthenticated bool
	Subject         string
	Error           string
}

func (r Result) Message() string {
	if r.Error == "" {
		return "Unauthorized"
	}
	return r.Error
}

// Verifier decides whether a request carries admin credentials.
type Verifier interface {
	VerifyAdmin(r *http.Request) Result
}

// JWTVerifier accepts tokens issued by GenerateAccessToken, sent either as a
// bearer token or in the admin cookie.
type JWTVerifier struct {
	cfg *config.JWTConfig
}

func NewJWTVerifier(cfg *config.JWTConfig) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

func (v *JWTVerifier) VerifyAdmin(r *http.Request) Result {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie(CookieName); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return Result{Error: "Unauthorized - No token provided"}
	}
	claims, err := ParseAccessToken(v.cfg, token)
	if err != nil {
		return Result{Error: "Unauthorized - Invalid token"}
	}
	if claims.Role != RoleAdmin {
		return Result{Error: "Unauthorized - Admin access required"}
	}
	return Result{IsAuthenticated: true, Subject: claims.Email}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(r *http.Request) Result

func (f VerifierFunc) VerifyAdmin(r *http.Request) Result { return f(r) }
