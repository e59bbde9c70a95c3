package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Karab-o/CareLink/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyUsed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrContactIndexOutOfRange):
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}
