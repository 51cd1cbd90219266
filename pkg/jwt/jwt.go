package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Usos de token: el refresh token solo sirve para emitir nuevos access tokens.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Role para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"` // admin | manager | planner | operator | viewer
	TokenUse string `json:"token_use"`
}

// Generate genera un access token firmado con userID, email y role.
func Generate(secret, userID, email, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, email, role, issuer, UseAccess, time.Duration(expMinutes)*time.Minute)
}

// GenerateRefresh genera un refresh token de vida larga (horas) con claim token_use=refresh.
func GenerateRefresh(secret, userID, email, role, issuer string, expHours int) (string, error) {
	return sign(secret, userID, email, role, issuer, UseRefresh, time.Duration(expHours)*time.Hour)
}

func sign(secret, userID, email, role, issuer, use string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Email:    email,
		Role:     role,
		TokenUse: use,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ParseAccess valida un token y exige que sea de uso access.
func ParseAccess(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	// Tokens emitidos antes de introducir token_use se tratan como access.
	if claims.TokenUse != "" && claims.TokenUse != UseAccess {
		return nil, fmt.Errorf("jwt: se esperaba un access token")
	}
	return claims, nil
}

// ParseRefresh valida un token y exige que sea de uso refresh.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != UseRefresh {
		return nil, fmt.Errorf("jwt: se esperaba un refresh token")
	}
	return claims, nil
}
