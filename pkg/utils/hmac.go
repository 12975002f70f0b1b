package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateHMAC creates/returns hash string
// It signs data with key and returns the HMAC-SHA256 as a hexadecimal string.
func GenerateHMAC(key []byte, data string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateHMAC returns true if signature is the HMAC of data under key.
// The comparison is constant time.
func ValidateHMAC(key []byte, data, signature string) bool {
	if signature == "" {
		return false
	}
	expected := GenerateHMAC(key, data)
	return hmac.Equal([]byte(signature), []byte(expected))
}
