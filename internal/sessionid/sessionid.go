// Package sessionid generates sortable session identifiers: a 48-bit
// millisecond timestamp followed by 80 random bits, encoded as a
// 26-character Crockford base32 string. Creation order is preserved
// lexically, which keeps session listings stable.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail, injectable for deterministic
// tests. Production callers pass nil and get crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generate creates a new session ID.
func Generate() string {
	return GenerateWithRandSource(nil)
}

// GenerateWithRandSource creates a session ID using the provided
// randomness.
func GenerateWithRandSource(src RandSource) string {
	var raw [16]byte

	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		raw[i] = byte(now >> (40 - 8*i))
	}

	if src != nil {
		for i := 6; i < 16; i++ {
			raw[i] = byte(src.Intn(256))
		}
	} else {
		if _, err := rand.Read(raw[6:]); err != nil {
			panic("sessionid: reading random bytes: " + err.Error())
		}
	}

	return encodeBase32(raw)
}

// Validate checks that an ID has the expected shape.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("session ID must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("session ID has invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}

// encodeBase32 packs 128 bits into 26 base32 characters, five bits at a
// time, most significant bits first.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}
