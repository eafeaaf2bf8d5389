package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"distributor-be/internal/gst"
	"distributor-be/internal/logger"
	"distributor-be/internal/mailer"
	"distributor-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
}

type service struct {
	repo     Repository
	registry gst.Verifier
	mail     mailer.Mailer
	otpTTL   time.Duration
}

func NewService(repo Repository, registry gst.Verifier, mail mailer.Mailer, otpTTL time.Duration) Service {
	return &service{
		repo:     repo,
		registry: registry,
		mail:     mail,
		otpTTL:   otpTTL,
	}
}

// Register creates an unverified user and emails a one-time code. For
// retailers the business registry check runs first: a failed check aborts
// with no user record written.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
	)

	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	role := NormalizeRole(input.Role)

	var businessName, gstNumber *string
	if role == RoleRetailer {
		if input.BusinessName == "" || input.GSTNumber == "" {
			return nil, ErrRetailerFields
		}

		res, err := s.registry.Verify(ctx, input.GSTNumber)
		if err != nil {
			log.Warn("gst verification errored", zap.Error(err))
			return nil, err
		}
		if !res.Verified {
			log.Warn("gst verification rejected", zap.String("message", res.Message))
			return nil, fmt.Errorf("%w: %s", gst.ErrVerificationFailed, res.Message)
		}

		// The registry's legal name supersedes the submitted one.
		businessName = &res.LegalName
		gstNumber = &input.GSTNumber
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	otp := GenerateOTP()
	expires := time.Now().Add(s.otpTTL)

	u := &User{
		Name:            input.Name,
		Email:           input.Email,
		Password:        hashed,
		Role:            role,
		IsVerified:      false,
		VerificationOTP: &otp,
		OTPExpires:      &expires,
		BusinessName:    businessName,
		GSTNumber:       gstNumber,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	metrics.Registrations.Inc()

	// The user row survives a delivery failure; the error still surfaces
	// so the client knows no code arrived.
	if err := s.mail.SendVerificationOTP(ctx, u.Email, u.Name, otp); err != nil {
		log.Error("failed to send verification otp", zap.Error(err))
		return nil, err
	}

	log.Info("registration completed, otp issued",
		zap.Uint("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return u, nil
}

// VerifyOTP consumes the one-time code. It succeeds exactly once: on
// success (and on expiry) the stored code is cleared.
func (s *service) VerifyOTP(ctx context.Context, email, otp string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyOTP"),
		zap.String("email", email),
	)

	if email == "" || otp == "" {
		return "", nil, fmt.Errorf("%w: email and otp are required", ErrInvalidInput)
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if u.IsVerified {
		return "", nil, ErrAlreadyVerified
	}

	if u.VerificationOTP == nil || *u.VerificationOTP != otp {
		log.Warn("otp mismatch")
		return "", nil, ErrInvalidOTP
	}

	if u.OTPExpires == nil || time.Now().After(*u.OTPExpires) {
		// Clear the stale code so the same submission cannot match again.
		if err := s.repo.ClearOTP(ctx, u.ID); err != nil {
			log.Error("failed to clear expired otp", zap.Error(err))
		}
		return "", nil, ErrOTPExpired
	}

	if err := s.repo.MarkVerified(ctx, u.ID); err != nil {
		log.Error("failed to mark user verified", zap.Error(err))
		return "", nil, err
	}

	u.IsVerified = true
	u.VerificationOTP = nil
	u.OTPExpires = nil

	token, err := GenerateJWT(u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", nil, err
	}

	metrics.OTPVerifications.Inc()
	log.Info("email verified", zap.Uint("user_id", u.ID))

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("email not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsVerified {
		return "", nil, ErrNotVerified
	}

	token, err := GenerateJWT(u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}
