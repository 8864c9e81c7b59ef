package auth

import (
	"net/http"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

// DevIssuer is the issuer stamped on locally signed tokens when no Auth0
// domain is configured.
const DevIssuer = "https://flashdeck.localhost/"

// Subject returns the validated caller identity from the request context.
// The second return is false when no valid token was presented.
func Subject(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// HasFeature reports whether the caller's plan grants the named feature.
func HasFeature(r *http.Request, feature string) bool {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return false
	}
	custom, ok := claims.CustomClaims.(*CustomClaims)
	if !ok || custom == nil {
		return false
	}
	return custom.hasFeature(feature)
}

// IssueDevToken signs an HS256 token the dev-mode validator accepts. Local
// runs and tests use this in place of the Auth0 tenant.
func IssueDevToken(secret, subject, audience string, features []string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":      DevIssuer,
		"aud":      audience,
		"sub":      subject,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
		"features": features,
	})
	return token.SignedString([]byte(secret))
}
