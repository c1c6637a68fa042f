package opencity2k

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Text in city files uses the Windows code page of the original release.
var codePage = charmap.Windows1252

func decodeText(b []byte) string {
	s, err := codePage.NewDecoder().Bytes(b)
	if err != nil {
		// Every byte maps to a rune in this code page
		return string(b)
	}
	return string(s)
}

func encodeText(s string) ([]byte, error) {
	b, err := codePage.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("opencity2k: %q cannot be stored: %w", s, err)
	}
	return b, nil
}

// cstring returns b up to the first NUL.
func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

func toLF(s string) string {
	return strings.ReplaceAll(s, "\r", "\n")
}

func toCR(s string) string {
	return strings.ReplaceAll(s, "\n", "\r")
}
