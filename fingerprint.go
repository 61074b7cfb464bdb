package scrollpdf

import "hash/fnv"

// Fingerprint is a fixed-size digest of a frame's raw pixel bytes,
// used for cheap equality comparison between consecutive captures.
// It is not a security primitive.
type Fingerprint uint64

// Hasher computes a Fingerprint over raw frame bytes. Sessions accept
// a custom Hasher via WithHasher; the default is FNV-1a.
type Hasher func([]byte) Fingerprint

// fnvFingerprint is the default Hasher.
func fnvFingerprint(data []byte) Fingerprint {
	h := fnv.New64a()
	h.Write(data)
	return Fingerprint(h.Sum64())
}
