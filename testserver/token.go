package testserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func generateToken(secret []byte, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", errors.New("subject claim missing")
	}
	return email, nil
}
