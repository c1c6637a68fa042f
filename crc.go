package opencity2k

import (
	"fmt"
	"hash/crc32"
)

// Checksum returns the CRC-32 of b formatted as eight upper case hex digits,
// the key cities are indexed by.
func Checksum(b []byte) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}
