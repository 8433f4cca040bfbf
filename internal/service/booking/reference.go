package booking

import "math/rand"

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference generates a display booking reference: the configured prefix
// followed by six uppercase alphanumerics. It is a session-local token, not
// globally unique; a production deployment takes the reference from the
// booking backend's response instead.
func NewReference(prefix string) string {
	buf := make([]byte, 6)
	for i := range buf {
		buf[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return prefix + string(buf)
}
