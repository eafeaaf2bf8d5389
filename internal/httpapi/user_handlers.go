package httpapi

import (
	"encoding/json"
	"net/http"

	"distributor-be/internal/user"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

// authResponse is the body returned by login and OTP verification.
type authResponse struct {
	Message      string  `json:"message"`
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	BusinessName *string `json:"business_name,omitempty"`
	Token        string  `json:"token"`
}

func newAuthResponse(message, token string, u *user.User) authResponse {
	return authResponse{
		Message:      message,
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		BusinessName: u.BusinessName,
		Token:        token,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"message":   "registration successful, check your email for the verification code",
		"userEmail": u.Email,
	})
}

func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	token, u, err := h.users.VerifyOTP(r.Context(), in.Email, in.OTP)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newAuthResponse("account verified", token, u))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	token, u, err := h.users.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newAuthResponse("login successful", token, u))
}
