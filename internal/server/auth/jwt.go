// Package auth mints and verifies session tokens. A token carries the
// principal (user id plus admin flag) signed with HS256; the HTTP layer
// stores it in the session cookie.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID  int64 `json:"uid"`
	IsAdmin bool  `json:"adm"`
}

func GenerateToken(p authz.Principal, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:  p.UserID,
		IsAdmin: p.IsAdmin,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func PrincipalFromToken(tokenString string, secretKey []byte) (authz.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return authz.Anonymous, common.ErrInvalidToken
	}

	if !token.Valid {
		return authz.Anonymous, common.ErrInvalidToken
	}

	return authz.Principal{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
