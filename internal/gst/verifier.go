package gst

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"distributor-be/internal/logger"

	"go.uber.org/zap"
)

var (
	// ErrInvalidFormat is a validation failure: the submitted GSTIN does not
	// have the 15-character alphanumeric shape.
	ErrInvalidFormat = errors.New("invalid gstin format: must be 15 digits/letters")

	// ErrVerificationFailed means the registry answered and rejected the GSTIN.
	ErrVerificationFailed = errors.New("gstin verification failed")

	// ErrRegistryUnavailable means the registry could not be reached at all.
	ErrRegistryUnavailable = errors.New("business registry unavailable")
)

// Result is the registry's answer for a GSTIN lookup.
type Result struct {
	Verified  bool
	LegalName string
	State     string
	Message   string
}

// Verifier checks a retailer's GSTIN against the business registry.
type Verifier interface {
	Verify(ctx context.Context, gstin string) (*Result, error)
}

var gstinPattern = regexp.MustCompile(`^[0-9A-Z]{15}$`)

// MockVerifier simulates the external registry for development:
// a "00" prefix fails verification, a "99" prefix resolves to a premium
// legal name, anything else verifies with a standard legal name.
type MockVerifier struct {
	// Latency simulates the registry round trip. Zero disables the delay.
	Latency time.Duration
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Latency: 500 * time.Millisecond}
}

func (v *MockVerifier) Verify(ctx context.Context, gstin string) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gst"),
		zap.String("gstin", gstin),
	)

	log.Debug("mock gst verification started")

	if v.Latency > 0 {
		select {
		case <-time.After(v.Latency):
		case <-ctx.Done():
			return nil, ErrRegistryUnavailable
		}
	}

	if !gstinPattern.MatchString(gstin) {
		log.Warn("gstin failed format check")
		return nil, ErrInvalidFormat
	}

	if strings.HasPrefix(gstin, "00") {
		log.Info("gstin rejected by mock registry")
		return &Result{
			Verified: false,
			Message:  "GSTIN starts with '00' - Mock Failure: Business Inactive.",
		}, nil
	}

	if strings.HasPrefix(gstin, "99") {
		return &Result{
			Verified:  true,
			LegalName: "PREMIUM MOCK RETAIL CORP " + gstin[4:],
			State:     "Maharashtra",
			Message:   "Successfully verified (MOCK PREMIUM)",
		}, nil
	}

	return &Result{
		Verified:  true,
		LegalName: "Standard Mock Retailer " + gstin,
		State:     "Karnataka",
		Message:   "Successfully verified (MOCK DEFAULT)",
	}, nil
}
