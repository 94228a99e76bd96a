package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-staking-api/internal/api/shared/errors"
	"github.com/feral-file/ff-staking-api/internal/logger"
)

// contextKey is a custom type for gin context keys
type contextKey string

const (
	AuthMethodKey  contextKey = "auth_method"
	AuthSubjectKey contextKey = "auth_subject"
)

const (
	AuthMethodJWT    = "jwt"
	AuthMethodAPIKey = "apikey"
)

// AuthConfig holds authentication configuration for the write routes
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// Enabled reports whether any credential source is configured
func (cfg AuthConfig) Enabled() bool {
	if cfg.JWTPublicKey != "" {
		return true
	}
	for _, key := range cfg.APIKeys {
		if key != "" {
			return true
		}
	}
	return false
}

// Identity is the caller resolved from the Authorization header
type Identity struct {
	Method  string
	Subject string
}

// Authenticate resolves the caller from an Authorization header of the form
// "Bearer <jwt>" or "ApiKey <key>".
func Authenticate(header string, cfg AuthConfig) (Identity, error) {
	if header == "" {
		return Identity{}, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(header, " ")
	if !ok || credentials == "" {
		return Identity{}, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := verifyJWT(credentials, cfg.JWTPublicKey)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Method: AuthMethodJWT, Subject: claims.Subject}, nil
	case "apikey":
		if err := verifyAPIKey(credentials, cfg.APIKeys); err != nil {
			return Identity{}, err
		}
		return Identity{Method: AuthMethodAPIKey}, nil
	default:
		return Identity{}, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware that rejects unauthenticated requests with 401
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := Authenticate(c.GetHeader("Authorization"), cfg)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewErrorResponse(fmt.Sprintf("authentication failed: %s", err)))
			return
		}

		logger.DebugCtx(c.Request.Context(), "Authenticated request",
			zap.String("method", identity.Method),
			zap.String("subject", identity.Subject),
			zap.String("path", c.Request.URL.Path),
		)

		c.Set(AuthMethodKey, identity.Method)
		if identity.Subject != "" {
			c.Set(AuthSubjectKey, identity.Subject)
		}

		c.Next()
	}
}

// verifyJWT validates an RS256-family token and returns its registered claims.
// Expiry and not-before are enforced by the parser.
func verifyJWT(token string, publicKeyPEM string) (*jwt.RegisteredClaims, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses a PKIX or PKCS1 RSA public key in PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaKey, nil
}

// verifyAPIKey checks key against the configured keys, ignoring empty entries
func verifyAPIKey(key string, validKeys []string) error {
	configured := false
	for _, valid := range validKeys {
		if valid == "" {
			continue
		}
		configured = true
		if valid == key {
			return nil
		}
	}

	if !configured {
		return errors.New("no API keys configured")
	}
	return errors.New("invalid API key")
}
