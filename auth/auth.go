package auth

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Every service holding the shared secret verifies tokens locally.
// No service ever calls users_service to authenticate a request.

const issuer = "users_service"

var (
	ErrUnauthenticated = errors.New("missing or invalid token")
	ErrExpired         = errors.New("token expired")
)

// Context is the verified identity of a caller. Handlers receive it as an
// explicit value from CheckAuth/FromRequest; it is never stashed in
// request-scoped ambient state.
type Context struct {
	UserID int64
}

func GenerateToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

func VerifyToken(tokenString string, secret []byte) (Context, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	claims := jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Context{}, ErrExpired
		}
		return Context{}, ErrUnauthenticated
	}
	if !parsed.Valid || claims.Subject == "" {
		return Context{}, ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Context{}, ErrUnauthenticated
	}
	return Context{UserID: userID}, nil
}

// FromRequest verifies the bearer token carried by r.
func FromRequest(r *http.Request, secret []byte) (Context, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Context{}, ErrUnauthenticated
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if len(tokenString) == 0 {
		return Context{}, ErrUnauthenticated
	}
	return VerifyToken(tokenString, secret)
}

// DecodeSecret decodes the base64 JWT_SECRET value every service shares.
func DecodeSecret(b64 string) ([]byte, error) {
	secret, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || len(secret) == 0 {
		return nil, errors.New("JWT_SECRET must be non-empty base64")
	}
	return secret, nil
}
