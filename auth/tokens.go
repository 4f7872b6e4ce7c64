// Package auth agrupa hashing de contraseñas y emisión/verificación de JWT.
// El secreto se inyecta siempre como argumento, nunca como global.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sistema-bodega/models"
)

const (
	// TokenTTL es la vigencia del token y de la fila de sesión asociada.
	TokenTTL = 15 * time.Minute

	Issuer = "sistema-bodega"
)

var ErrTokenInvalido = errors.New("token inválido o expirado")

type Claims struct {
	ID            uint       `json:"id"`
	NombreUsuario string     `json:"nombre_usuario"`
	Rol           models.Rol `json:"rol"`
	jwt.RegisteredClaims
}

// GenerateToken firma un HS256 con los datos mínimos del usuario.
func GenerateToken(secret []byte, u *models.Usuario) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(TokenTTL)
	claims := &Claims{
		ID:            u.ID,
		NombreUsuario: u.NombreUsuario,
		Rol:           u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

// ParseToken valida firma y expiración; nada más. La revocación anticipada
// la resuelve la fila de sesión.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalido
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalido
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
