package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest: H(content || dep1 || dep2 ...). deps уже в детерминированном порядке.
func combineDigest(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// optionsDigest covers every option that changes the diagnostics of a file.
func optionsDigest(opts Options) Digest {
	var buf [2 + 8 + 8]byte
	binary.LittleEndian.PutUint16(buf[0:], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(buf[2:], uint64(int64(opts.MaxDiagnostics)))
	binary.LittleEndian.PutUint64(buf[10:], uint64(int64(opts.MaxDepth)))
	return sha256.Sum256(buf[:])
}

// cacheKey derives the key for raw file content under opts.
func cacheKey(content []byte, opts Options) Digest {
	return combineDigest(sha256.Sum256(content), optionsDigest(opts))
}
