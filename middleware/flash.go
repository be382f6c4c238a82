package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	FlashCookie = "flash"
	flashTTL    = time.Minute
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

type flashClaims struct {
	Flash
	jwt.RegisteredClaims
}

// SetFlash stores a signed notice that the next page render will show once.
func SetFlash(w http.ResponseWriter, kind FlashKind, message string) {
	claims := &flashClaims{
		Flash: Flash{Kind: kind, Message: message},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(flashTTL)),
		},
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears the cookie.
// Tampered or expired cookies are dropped silently.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	token, err := jwt.ParseWithClaims(cookie.Value, &flashClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*flashClaims)
	if !ok || claims.Message == "" {
		return nil
	}
	f := claims.Flash
	return &f
}
