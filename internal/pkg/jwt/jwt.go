package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and validates the access tokens the UI surfaces present.
// Tokens carry the client name so log lines can tell the popup, the
// detail page and the agent apart.
type Service interface {
	GenerateAccessToken(client string) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (client string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(client string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"client": client,
		"type":   "access",
		"exp":    expiresAt,
	})
	return tokenString, expiresAt, err
}

// ValidateAccessToken decodes a token passed outside the Authorization
// header, which SSE connections need since EventSource cannot set headers.
func (j *JWTService) ValidateAccessToken(tokenString string) (client string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}
	if err := jwt.Validate(token, jwt.WithAcceptableSkew(30*time.Second)); err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "access" {
		return "", jwt.ErrInvalidJWT()
	}

	clientVal, ok := token.Get("client")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	client, ok = clientVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	return client, nil
}
