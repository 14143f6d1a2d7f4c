package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Checksum generates a deterministic content hash using BLAKE2b.
// Identical content always produces the same checksum, which lets a rerun
// recognize chunks whose text has not changed since the last ingestion.
func Checksum(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
