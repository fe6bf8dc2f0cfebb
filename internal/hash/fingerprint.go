package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of parts joined by a zero byte, so that
// ("ab", "c") and ("a", "bc") hash differently.
//
// Parameters:
//   - parts: Strings to hash, in order
//
// Returns:
//   - uint64: The xxHash64 digest of the joined parts
func Fingerprint(parts ...string) uint64 {
	d := xxhash.New()
	for i, p := range parts {
		if i > 0 {
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.WriteString(p)
	}

	return d.Sum64()
}
