package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"
	"github.com/Karab-o/CareLink/internal/netutil"
	"github.com/Karab-o/CareLink/internal/registry"
	"github.com/Karab-o/CareLink/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	auth     service.AuthService
	contacts service.ContactService
	alerts   service.AlertService
	reg      *registry.Registry
	started  time.Time
}

func NewHandler(auth service.AuthService, contacts service.ContactService, alerts service.AlertService, reg *registry.Registry) *Handler {
	return &Handler{
		auth:     auth,
		contacts: contacts,
		alerts:   alerts,
		reg:      reg,
		started:  time.Now().UTC(),
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if normalized, ok := netutil.NormalizeIP(ip); ok {
			return normalized
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if normalized, ok := netutil.NormalizeIP(xr); ok {
			return normalized
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.auth.Register(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.auth.Login(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	res, err := h.auth.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleAddContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	contacts, err := h.contacts.AddContact(r.Context(), userID, domain.TrustedContact{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Relationship: req.Relationship,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactList(contacts))
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	contacts, err := h.contacts.ListContacts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contactList(contacts))
}

func (h *Handler) handleRemoveContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	contacts, err := h.contacts.RemoveContact(r.Context(), userID, index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contactList(contacts))
}

func (h *Handler) handleDispatchAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	var req dto.AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.alerts.Dispatch(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleAlertHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "no subject", http.StatusUnauthorized)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	alerts, err := h.alerts.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AlertListResponse{Alerts: alerts})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "OK",
		"timestamp":      time.Now().UTC(),
		"uptimeSeconds":  int64(time.Since(h.started).Seconds()),
		"connectedUsers": h.reg.UserCount(),
	})
}

func (h *Handler) handleSocketStatus(w http.ResponseWriter, r *http.Request) {
	users := h.reg.Users()
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connected": h.reg.Count(),
		"users":     ids,
	})
}

func contactList(contacts []domain.TrustedContact) dto.ContactListResponse {
	views := make([]dto.ContactView, 0, len(contacts))
	for i, c := range contacts {
		views = append(views, dto.ContactView{
			Index:        i,
			Name:         c.Name,
			Phone:        c.Phone,
			Email:        c.Email,
			Relationship: c.Relationship,
		})
	}
	return dto.ContactListResponse{Contacts: views}
}
