package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"distributor-be/internal/gst"
	"distributor-be/internal/logger"
	"distributor-be/internal/mailer"
	"distributor-be/internal/order"
	"distributor-be/internal/product"
	"distributor-be/internal/user"
	"distributor-be/internal/wishlist"

	"go.uber.org/zap"
)

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// statusFor maps a domain error to its HTTP status. Anything unmapped
// is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrRetailerFields),
		errors.Is(err, user.ErrAlreadyVerified),
		errors.Is(err, gst.ErrInvalidFormat),
		errors.Is(err, gst.ErrVerificationFailed),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidInput),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, wishlist.ErrInvalidInput):
		return http.StatusBadRequest

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrNotVerified),
		errors.Is(err, user.ErrInvalidOTP),
		errors.Is(err, user.ErrOTPExpired):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, wishlist.ErrItemNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrNameExists),
		errors.Is(err, product.ErrSKUExists),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, wishlist.ErrAlreadyInWishlist):
		return http.StatusConflict

	case errors.Is(err, mailer.ErrSendFailed),
		errors.Is(err, gst.ErrRegistryUnavailable):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// WriteError renders a domain error as {"message": ...}. Internal
// errors are logged with their cause but reported generically.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		message = "internal server error"
	}

	WriteJSON(w, status, map[string]string{"message": message})
}
