package content

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// EmbedText returns the NFC-normalized text sent to the model for item.
// The stored text is left as written.
func EmbedText(item ContentItem) string {
	return norm.NFC.String(item.Text)
}

// Checksum returns the hex SHA-256 of payload.
func Checksum(payload []byte) string {
	h := sha256.Sum256(payload)
	return hex.EncodeToString(h[:])
}
