package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "password123"
	hashedPassword, err := HashPassword(password, bcrypt.MinCost)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestHashPassword_Salted(t *testing.T) {
	first, _ := HashPassword("password123", bcrypt.MinCost)
	second, _ := HashPassword("password123", bcrypt.MinCost)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_UsesWorkFactor(t *testing.T) {
	hashedPassword, _ := HashPassword("password123", 5)

	cost, err := bcrypt.Cost([]byte(hashedPassword))
	assert.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "password123"
	hashedPassword, _ := HashPassword(password, bcrypt.MinCost)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("password123", "invalidhash"))
}

func TestClampCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, ClampCost(0))
	assert.Equal(t, 12, ClampCost(12))
	assert.Equal(t, bcrypt.MaxCost, ClampCost(99))
}
