package hashtable

import "github.com/cespare/xxhash/v2"

// HashFunc maps a key to a 64-bit hash. A table reduces the result
// modulo its slot count, so a HashFunc must return the same value for
// the same key for the lifetime of the table.
type HashFunc func(key string) uint64

// DJB2 implements Dan Bernstein's string hash: starting from 5381,
// each byte b of key updates the hash to h*33 + b. Arithmetic wraps
// at 64 bits. Every byte of key contributes, including NUL bytes.
//
// DJB2 is the default hash of a Table.
func DJB2(key string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(key); i++ {
		h = h<<5 + h + uint64(key[i])
	}
	return h
}

// XXHash hashes key with xxHash64. It can be passed to WithHashFunc
// when keys are long or adversarially similar.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}
