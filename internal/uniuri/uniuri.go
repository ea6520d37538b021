package uniuri

import (
	"crypto/rand"
)

const (
	// StdLen gives ~95 bits of entropy with StdChars.
	StdLen = 16
	// SessionLen gives ~256 bits of entropy with StdChars.
	SessionLen = 43

	bufLen = 64
)

// StdChars are the characters used by New and NewLen.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// New returns a random string of StdLen standard characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of length standard characters.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of length characters taken from chars.
// chars must hold between 2 and 256 bytes. Bytes that would bias the modulo are rejected.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length")
	}

	// largest multiple of clen that fits a byte
	limit := 256 - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, bufLen)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
