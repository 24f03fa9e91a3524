// Package blake2b provides the BLAKE2b-256 hash every CKB digest surface is
// built on: 32-byte output, personalized with "ckb-default-hash".
//
// The personalization is a BLAKE2b parameter, not a key or an input prefix;
// hashes configured with different personalizations disagree on every input.
// Transaction hashes, script hashes and signing digests all go through this
// package so that producers and verifiers of a digest cannot drift apart.
//
// This corresponds to:
//   - ckb-typed-message/src/blake2b.rs (new_blake2b)
//   - the ckb-hash crate's CKB_HASH_PERSONALIZATION
package blake2b

import (
	"hash"

	minio "github.com/minio/blake2b-simd"
)

// Personalization is the 16-byte BLAKE2b personalization shared by all CKB
// hashes.
const Personalization = "ckb-default-hash"

// Size is the digest length in bytes.
const Size = 32

// New returns an incremental BLAKE2b-256 hash personalized for CKB. Sum
// finalizes to exactly Size bytes.
func New() hash.Hash {
	h, err := minio.New(&minio.Config{
		Size:   Size,
		Person: []byte(Personalization),
	})
	if err != nil {
		// The config is constant and valid; the constructor only rejects
		// malformed configs.
		panic("blake2b: " + err.Error())
	}
	return h
}

// Sum256 is the one-shot convenience over New.
func Sum256(data []byte) [Size]byte {
	h := New()
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
