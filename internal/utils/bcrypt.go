package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// ClampCost keeps a configured work factor inside bcrypt's accepted range
func ClampCost(cost int) int {
	if cost < bcrypt.MinCost {
		return bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}

// HashPassword hashes password with the given bcrypt work factor
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), ClampCost(cost))
	return string(bytes), err
}

// CheckPasswordHash compares password against hash in constant time
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
