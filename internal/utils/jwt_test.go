package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTUtil_GenerateToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 1)

	tokenString, err := jwtUtil.GenerateToken("alice")

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTUtil_GenerateToken_NoExpiry(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	tokenString, err := jwtUtil.GenerateToken("alice")
	assert.NoError(t, err)

	claims, err := jwtUtil.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTUtil_ValidateToken_InvalidToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)

	_, err := jwtUtil.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_ExpiredToken(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", -1) // Token expires in the past

	tokenString, _ := jwtUtil.GenerateToken("alice")

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTUtil_ValidateToken_WrongSecret(t *testing.T) {
	jwtUtil1 := NewJWTUtil("secret1", 0)
	jwtUtil2 := NewJWTUtil("secret2", 0)

	tokenString, _ := jwtUtil1.GenerateToken("alice")

	_, err := jwtUtil2.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTUtil_ValidateToken_Tampered(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)
	tokenString, _ := jwtUtil.GenerateToken("alice")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{Username: "mallory"})
	forgedString, _ := forged.SignedString([]byte("other"))

	// alice's header and signature with mallory's payload
	parts := strings.Split(tokenString, ".")
	forgedParts := strings.Split(forgedString, ".")
	_, err := jwtUtil.ValidateToken(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_InvalidSigningMethod(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)
	claims := &JWTClaims{Username: "alice"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTUtil_ValidateToken_MissingUsername(t *testing.T) {
	jwtUtil := NewJWTUtil("secret", 0)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{})
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := jwtUtil.ValidateToken(tokenString)
	assert.ErrorIs(t, err, ErrMissingUsername)
}
