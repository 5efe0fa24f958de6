package api

import (
	"errors"
	"net/http"

	"optimanager/m/internal/auth"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if errors.Is(err, auth.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "User with this email already exists.")
		return
	}
	if errors.Is(err, auth.ErrInvalidRole) || errors.Is(err, auth.ErrPasswordTooLong) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.writeStoreError(w, r, err, entityMessages{})
		return
	}
	h.log.InfoContext(r.Context(), "user registered", "user_id", user.ID, "role", user.Role)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully!",
		"user":    user,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bind(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if err != nil {
		h.writeStoreError(w, r, err, entityMessages{})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"role":    user.Role,
		"name":    user.Name,
	})
}
