package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrHashingFailed возвращается при ошибке хеширования пароля
	ErrHashingFailed = errors.New("password hashing failed")

	// ErrMismatch возвращается, когда пароль не совпадает с хешем
	ErrMismatch = errors.New("password does not match")

	// ErrEmptyPassword возвращается при пустом пароле
	ErrEmptyPassword = errors.New("password must not be empty")
)

// Hash хеширует пароль bcrypt-ом со стоимостью по умолчанию
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// Compare сравнивает пароль с bcrypt-хешем
func Compare(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrEmptyPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
