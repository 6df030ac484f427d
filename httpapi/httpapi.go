// Package httpapi holds the JSON helpers every service boundary shares:
// response writing, the {"message": ...} error shape, and the bearer-token
// gate for protected routes.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ShounakM04/Blog-Microservices/auth"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Failed to encode response body: ", err.Error())
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// CheckAuth verifies the bearer token of r and hands back the caller's
// identity. On failure it writes the 401 itself and returns ok=false.
func CheckAuth(w http.ResponseWriter, r *http.Request, secret []byte) (auth.Context, bool) {
	actx, err := auth.FromRequest(r, secret)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			WriteError(w, http.StatusUnauthorized, "Token expired")
		} else {
			WriteError(w, http.StatusUnauthorized, "Invalid or missing token")
		}
		return auth.Context{}, false
	}
	return actx, true
}
