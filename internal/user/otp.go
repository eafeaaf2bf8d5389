package user

import (
	"fmt"
	"math/rand"
)

// GenerateOTP returns a 6-digit one-time code.
func GenerateOTP() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
