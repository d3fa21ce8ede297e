package utils

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type claimsContextKey struct{}

// ContextWithClaims stores verified token claims for downstream handlers.
func ContextWithClaims(ctx context.Context, claims *models.JWT) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext retrieves the claims the auth middleware stored.
func ClaimsFromContext(ctx context.Context) (*models.JWT, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*models.JWT)
	return claims, ok
}

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a plain password with its hashed version
func CheckPassword(password, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	return err == nil
}

// GenerateJWT generates a JWT token for the given user
func GenerateJWT(user models.JWT, cfg models.JWTConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"roles":    user.Roles,
		"branches": user.Branches,
		"iss":      cfg.Issuer,
		"aud":      cfg.Audience,
		"exp":      now.Add(cfg.Expiry).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(cfg.Algorithm), claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseJWT validates the token and returns claims
func ParseJWT(tokenString string, cfg models.JWTConfig) (*models.JWT, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != cfg.Algorithm {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return &models.JWT{
		ID:        int64(claims["id"].(float64)),
		Name:      claims["name"].(string),
		Username:  claims["username"].(string),
		Roles:     claims["roles"].(string),
		Branches:  claims["branches"].(string),
		Issuer:    claims["iss"].(string),
		Audience:  claims["aud"].(string),
		ExpiresAt: int64(claims["exp"].(float64)),
		IssuedAt:  int64(claims["iat"].(float64)),
	}, nil
}

// HasRole reports whether the comma-separated roles claim includes role.
func HasRole(claims *models.JWT, role string) bool {
	for _, r := range strings.Split(claims.Roles, ",") {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// CanAccessBranch reports whether the branches claim covers branchID. The
// literal "ALL" grants every branch.
func CanAccessBranch(claims *models.JWT, branchID string) bool {
	for _, b := range strings.Split(claims.Branches, ",") {
		b = strings.TrimSpace(b)
		if strings.EqualFold(b, "ALL") || b == branchID {
			return true
		}
	}
	return false
}
