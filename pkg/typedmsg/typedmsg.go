// Package typedmsg computes the signing digest for transactions that carry
// a typed message, the structured statement of intent signers approve in
// place of an opaque hash.
//
// The pipeline validates the witness layout first and hashes second: the
// current group's extra witnesses must be empty, exactly one witness in the
// whole transaction must hold the message, and the group's primary witness
// must be one of the two sighash variants. The digest then covers the
// transaction hash, every witness past the last input, and the serialized
// message, all under personalized BLAKE2b-256.
//
// Reference implementation (Rust, on-chain lock script):
//   - ckb-typed-message/src/lib.rs
package typedmsg

import (
	"hash"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/blake2b"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/schemas"
)

// WitnessDecoder turns raw witness bytes into an extended witness.
type WitnessDecoder func([]byte) (schemas.ExtendedWitness, error)

// Parser drives the digest pipeline over one script group of a transaction.
//
// A Parser holds no mutable state between calls; every method reads through
// the loader, so concurrent use over read-only loaders is safe.
type Parser struct {
	ld      host.Loader
	decode  WitnessDecoder
	newHash func() hash.Hash
}

// NewParser builds a Parser over ld using the standard witness schema and
// the chain's personalized BLAKE2b-256.
func NewParser(ld host.Loader) *Parser {
	return &Parser{
		ld:      ld,
		decode:  schemas.DecodeExtendedWitness,
		newHash: blake2b.New,
	}
}

// WithDecoder replaces the witness decoder and returns the Parser for
// chaining. Schema extensions hook in here.
func (p *Parser) WithDecoder(decode WitnessDecoder) *Parser {
	p.decode = decode
	return p
}

// WithHash replaces the hash constructor and returns the Parser for
// chaining.
func (p *Parser) WithHash(newHash func() hash.Hash) *Parser {
	p.newHash = newHash
	return p
}

// Parse validates the witness layout and computes the signing digest for
// the group. It returns the digest together with the lock bytes of the
// group's primary witness, the slot a signer fills with the signature.
func (p *Parser) Parse() (digest [32]byte, lock []byte, err error) {
	if err := p.CheckOthersInGroup(); err != nil {
		return digest, nil, err
	}
	withAction, err := p.FetchSighashWithAction()
	if err != nil {
		return digest, nil, err
	}
	primary, err := p.FetchSighash()
	if err != nil {
		return digest, nil, err
	}

	var message []byte
	switch w := primary.(type) {
	case *schemas.SighashWithAction:
		message = w.Message.AsSlice()
		lock = w.Lock
	case *schemas.Sighash:
		// The primary witness holds only the signature slot; the message
		// it signs over lives in the transaction's sole typed message
		// witness.
		message = withAction.Message.AsSlice()
		lock = w.Lock
	}

	skeleton, err := p.SkeletonHash()
	if err != nil {
		return digest, nil, err
	}
	return p.FinalHash(skeleton, message), lock, nil
}
