package auth

import (
	"errors"

	"attendance-backend/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost testlerde düşürülebilir
var BcryptCost = bcrypt.DefaultCost

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), BcryptCost)
	return string(b), err
}

// HashNewPassword: istemciden gelen şifreyi hashler. bcrypt 72 byte üstünü
// kabul etmez, bu durum 500 değil validation hatasıdır.
func HashNewPassword(pw string) (string, error) {
	hash, err := HashPassword(pw)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.Validation(apperr.CodeInvalidParams, "Password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperr.Internal("şifre hashlenemedi", err)
	}
	return hash, nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
