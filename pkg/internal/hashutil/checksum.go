package hashutil

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Sum returns the hex encoded SHA256 of data.
func Sum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// Fingerprint identifies a named buffer by its name and content. The name is
// length prefixed so no two (name, data) pairs share an encoding.
func Fingerprint(name string, data []byte) string {
	hash := sha256.New()

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(name)))
	_, _ = hash.Write(size[:])
	_, _ = hash.Write([]byte(name))
	_, _ = hash.Write(data)

	return fmt.Sprintf("sha256:%x", hash.Sum(nil))
}
