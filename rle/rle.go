/*
Package rle implements the two-mode run-length scheme used for most chunk
payloads in SimCity 2000 city and tileset files.

A control byte in the range 0x01 to 0x7f is followed by that many literal bytes.
A control byte in the range 0x81 to 0xff is followed by a single byte that is
repeated (control - 0x7f) times. The values 0x00 and 0x80 never appear as a
control byte in well-formed input.
*/
package rle

import "errors"

const (
	maxLiteral = 0x7f
	maxRepeat  = 0x80
	repeatBias = 0x7f
)

var (
	errBadControl = errors.New("rle: invalid control byte")
	errShort      = errors.New("rle: run extends past end of input")
)

// Decompress expands b, returning an error if a run is truncated or a
// reserved control byte is encountered.
func Decompress(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b)*2)
	for i := 0; i < len(b); {
		c := b[i]
		i++
		switch {
		case c == 0x00 || c == 0x80:
			return nil, errBadControl
		case c < 0x80:
			n := int(c)
			if i+n > len(b) {
				return nil, errShort
			}
			out = append(out, b[i:i+n]...)
			i += n
		default:
			if i >= len(b) {
				return nil, errShort
			}
			for n := int(c) - repeatBias; n > 0; n-- {
				out = append(out, b[i])
			}
			i++
		}
	}
	return out, nil
}

// Compress encodes b. Runs of a single byte are gathered into literal blocks
// of at most 127 bytes, longer runs are emitted as repeat blocks of at most 128
// bytes each. The output is not canonical; Decompress(Compress(b)) == b always
// holds but the reverse need not.
func Compress(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/maxLiteral+1)
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			out = append(out, byte(len(literal)))
			out = append(out, literal...)
			literal = literal[:0]
		}
	}

	for i := 0; i < len(b); {
		j := i + 1
		for j < len(b) && b[j] == b[i] {
			j++
		}
		n := j - i
		if n > 1 {
			flush()
			for n > 1 {
				k := n
				if k > maxRepeat {
					k = maxRepeat
				}
				out = append(out, byte(k+repeatBias), b[i])
				n -= k
			}
		}
		// A repeat count of one would need the reserved 0x80 control byte
		if n == 1 {
			if len(literal) == maxLiteral {
				flush()
			}
			literal = append(literal, b[i])
		}
		i = j
	}
	flush()

	return out
}
