package user

import "errors"

var (
	ErrEmailExists        = errors.New("a user with that email already exists")
	ErrNameExists         = errors.New("this username is already taken, please choose another")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified, please verify using the otp sent to your inbox")
	ErrAlreadyVerified    = errors.New("email is already verified, please proceed to login")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp has expired, please try registering again")
	ErrRetailerFields     = errors.New("retailer registration requires business name and gstin")
	ErrInvalidInput       = errors.New("invalid input")
)
