package facultycert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const VerificationCodeLength = sha256.Size * 2

// NewVerificationCode mints an opaque 64 character hex code. Two calls never return the
// same code, even for the same professor and instant.
func NewVerificationCode(professorName string, at time.Time) string {
	raw := fmt.Sprintf("%s_%s_%s", professorName, at.Format("2006-01-02 15:04:05.000000"), uuid.NewString())
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ShortCode is the code prefix used in file names.
func ShortCode(code string) string {
	if len(code) <= 8 {
		return code
	}
	return code[:8]
}

func CertificateFileName(professorID, code string) string {
	return fmt.Sprintf("certificate_%s_%s.pdf", professorID, ShortCode(code))
}
