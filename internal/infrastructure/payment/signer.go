package payment

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Signer produces the provider's keyed digest over a payment.
type Signer interface {
	Sign(merchantID, amount, orderID string) string
}

// MD5Signer implements md5("merchant:amount:secret:order"). The provider
// recomputes the same digest, so the algorithm cannot be changed here.
type MD5Signer struct {
	SecretKey string
}

func (s MD5Signer) Sign(merchantID, amount, orderID string) string {
	sum := md5.Sum([]byte(strings.Join([]string{merchantID, amount, s.SecretKey, orderID}, ":")))
	return hex.EncodeToString(sum[:])
}

func signaturesEqual(expected, received string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(received)))) == 1
}
