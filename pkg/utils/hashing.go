package utils

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {

	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))

}

// InviteCodeAlphabet omits 0, O, 1 and I.
const InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateInviteCode draws length characters from InviteCodeAlphabet using crypto/rand.
func GenerateInviteCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid invite code length")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, length)
	for i, b := range buf {
		code[i] = InviteCodeAlphabet[int(b)%len(InviteCodeAlphabet)]
	}
	return string(code), nil
}
