package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

func GenerateNChar(n int) (string, error) {
	id, err := gonanoid.New(n)
	if err != nil {
		return "", err
	}
	return id, nil
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferenceCode returns an upper case code without look-alike characters,
// e.g. "SR-7KQ2MX9A".
func GenerateReferenceCode(prefix string, n int) (string, error) {
	id, err := gonanoid.Generate(referenceAlphabet, n)
	if err != nil {
		return "", err
	}
	return prefix + "-" + id, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
