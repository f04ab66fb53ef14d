package services

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher turns plaintext credentials into one-way salted digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Compare(digest, plaintext string) bool
}

// BcryptHasher is a Hasher backed by bcrypt. Zero Cost means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
