package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/config"
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// EnsureValidToken builds the token-validation middleware. With an Auth0
// domain configured it validates RS256 tokens against the tenant's JWKS;
// without one it falls back to the local HS256 secret so the API can run
// against dev tokens.
func EnsureValidToken(cfg config.Config) func(http.Handler) http.Handler {
	var jwtValidator *validator.Validator
	var err error

	customClaims := func() validator.CustomClaims {
		return &auth.CustomClaims{}
	}

	if cfg.DevMode() {
		if cfg.JWTSecret == "" {
			log.Fatal("middleware: JWT_SECRET_KEY must be set when AUTH0_DOMAIN is empty")
		}
		keyFunc := func(ctx context.Context) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}
		jwtValidator, err = validator.New(
			keyFunc,
			validator.HS256,
			auth.DevIssuer,
			[]string{cfg.Auth0Audience},
			validator.WithCustomClaims(customClaims),
			validator.WithAllowedClockSkew(time.Minute),
		)
	} else {
		issuerURL, parseErr := url.Parse("https://" + cfg.Auth0Domain + "/")
		if parseErr != nil {
			log.Fatalf("middleware: invalid AUTH0_DOMAIN: %v", parseErr)
		}
		provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
		jwtValidator, err = validator.New(
			provider.KeyFunc,
			validator.RS256,
			issuerURL.String(),
			[]string{cfg.Auth0Audience},
			validator.WithCustomClaims(customClaims),
			validator.WithAllowedClockSkew(time.Minute),
		)
	}
	if err != nil {
		log.Fatalf("middleware: failed to set up JWT validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("EnsureValidToken: token validation failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
	}

	m := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(next http.Handler) http.Handler {
		return m.CheckJWT(next)
	}
}
