package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// RecordHash computes a stable hex SHA-256 over a record's fields in key
// order. Nil values count as absent.
func RecordHash(fields map[string]any) string {
	h := sha256.New()
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if fields[k] == nil {
			continue
		}
		h.Write([]byte(k))
		h.Write([]byte{0})
		fmt.Fprintf(h, "%v", fields[k])
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
