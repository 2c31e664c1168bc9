package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Authorizer decides whether a presented admin secret is valid. The shared
// secret below is not a hardened trust boundary: no rate limiting, no
// lockout. Swap in a stronger implementation before reusing it elsewhere.
type Authorizer interface {
	Authenticate(secret string) bool
}

// SharedSecret compares against one process-wide secret.
type SharedSecret struct {
	secret []byte
}

func NewSharedSecret(secret string) *SharedSecret {
	return &SharedSecret{secret: []byte(secret)}
}

func (a *SharedSecret) Authenticate(secret string) bool {
	if len(a.secret) == 0 || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare(a.secret, []byte(secret)) == 1
}

// HashedSecret holds only a bcrypt hash of the admin secret.
type HashedSecret struct {
	hash []byte
}

func NewHashedSecret(hash string) (*HashedSecret, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &HashedSecret{hash: []byte(hash)}, nil
}

func (a *HashedSecret) Authenticate(secret string) bool {
	if secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(secret)) == nil
}

// TokenIssuer signs short-lived admin tokens so the browser does not have
// to resend the secret with every privileged call.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, ttl: ttl, now: time.Now}
}

// Issue creates a new admin token
func (ti *TokenIssuer) Issue() (string, time.Time, error) {
	now := ti.now()
	expiresAt := now.Add(ti.ttl)
	claims := models.AdminClaims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   models.RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, expiry and role of an admin token
func (ti *TokenIssuer) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.key, nil
	}, jwt.WithTimeFunc(ti.now), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid || claims.Role != models.RoleAdmin {
		return models.ErrUnauthorized
	}
	return nil
}

// AdminGate guards privileged routes. A request passes with a valid admin
// token (Authorization: Bearer) or by presenting the secret itself in the
// X-Admin-Secret header or a secretKey form field.
type AdminGate struct {
	authz  Authorizer
	tokens *TokenIssuer
}

func NewAdminGate(authz Authorizer, tokens *TokenIssuer) *AdminGate {
	return &AdminGate{authz: authz, tokens: tokens}
}

func (g *AdminGate) Authenticate(secret string) bool {
	return g.authz.Authenticate(secret)
}

func (g *AdminGate) Tokens() *TokenIssuer {
	return g.tokens
}

// RequireAdmin middleware rejects requests without admin credentials
func (g *AdminGate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
				c.Abort()
				return
			}
			if err := g.tokens.Verify(strings.TrimPrefix(authHeader, "Bearer ")); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "details": err.Error()})
				c.Abort()
				return
			}
			c.Set("role", models.RoleAdmin)
			c.Next()
			return
		}

		secret := c.GetHeader("X-Admin-Secret")
		if secret == "" {
			secret = c.PostForm("secretKey")
		}
		if !g.authz.Authenticate(secret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
			c.Abort()
			return
		}

		c.Set("role", models.RoleAdmin)
		c.Next()
	}
}
