package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type PlayerClaims struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewPlayerClaims(playerId int64, username string) *PlayerClaims {
	return &PlayerClaims{
		PlayerId: playerId,
		Username: username,
	}
}

type Auth struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	cookieDomain  string
	cookieSecure  bool
}

func NewAuth() (*Auth, error) {
	secret, ok := os.LookupEnv("AUTH_SECRET")
	if !ok {
		return nil, fmt.Errorf("no AUTH_SECRET env variable set")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("AUTH_SECRET must be at least 32 bytes")
	}

	domain := os.Getenv("COOKIES_DOMAIN")

	secure := true
	if secureStr, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		secure = secureStr != "0"
	}

	return &Auth{
		secret:        []byte(secret),
		signingMethod: jwt.GetSigningMethod("HS256"),
		tokenLifetime: time.Hour * 24 * 30,
		cookieDomain:  domain,
		cookieSecure:  secure,
	}, nil
}

func (a *Auth) Sign(claims *PlayerClaims) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(a.tokenLifetime))
	return jwt.NewWithClaims(a.signingMethod, claims).SignedString(a.secret)
}

func (a *Auth) parse(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&PlayerClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != a.signingMethod.Alg() {
				return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
			}
			return a.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}

func (a *Auth) Refresh(w http.ResponseWriter, token string) error {
	if len(strings.Split(token, ".")) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    token,
		Expires:  time.Now().Add(a.tokenLifetime),
		HttpOnly: true,
		Domain:   a.cookieDomain,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (a *Auth) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   a.cookieDomain,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	return a.parse(authCookie.Value)
}
