// Package host defines the execution-environment boundary the digest
// pipeline reads the current transaction through, plus an in-memory
// implementation backed by a types.Transaction.
//
// On-chain these reads are syscalls against the transaction being verified;
// off-chain (wallets, tests) TxLoader serves the same reads from memory. The
// pipeline cannot tell the difference, so signer and verifier agree on the
// digest by construction.
package host

import (
	"errors"
	"fmt"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

// Source selects which witness sequence an index refers to.
type Source int

const (
	// SourceInput indexes every witness of the transaction, in order.
	SourceInput Source = iota + 1
	// SourceGroupInput indexes the witnesses of the current script group's
	// inputs, in transaction order.
	SourceGroupInput
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceGroupInput:
		return "group input"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// ErrIndexOutOfBound reports a witness index past the end of its sequence.
// Iterating callers treat it as the end of iteration, not as a failure.
var ErrIndexOutOfBound = errors.New("host: index out of bound")

// Window is the result of a partial read of the serialized transaction
// envelope.
type Window struct {
	// Bytes holds up to the requested length; less when the envelope ends
	// inside the window.
	Bytes []byte
	// Truncated reports that the envelope continued past the window. A
	// deliberately small window over a real transaction always comes back
	// truncated; that is the normal outcome, not a failure.
	Truncated bool
}

// Loader exposes the transaction under verification. Implementations never
// mutate the transaction and hand out immutable snapshots; callers must not
// write to returned slices.
type Loader interface {
	// TxHash returns the transaction hash, which covers the raw
	// transaction and excludes witnesses.
	TxHash() ([32]byte, error)
	// Witness returns the witness at index within the source's sequence,
	// or ErrIndexOutOfBound past the end.
	Witness(index int, source Source) ([]byte, error)
	// EnvelopeWindow reads up to length bytes of the serialized
	// transaction envelope starting at offset.
	EnvelopeWindow(offset uint32, length int) (Window, error)
}

// TxLoader serves loads from an in-memory transaction, standing in for the
// on-chain environment.
type TxLoader struct {
	tx       *types.Transaction
	group    []int
	envelope []byte
	hash     [32]byte
}

// NewTxLoader wraps a transaction for loading. group lists the global
// witness indices of the current script group's inputs, ascending; the
// slice is copied.
func NewTxLoader(tx *types.Transaction, group []int) *TxLoader {
	return &TxLoader{
		tx:       tx,
		group:    append([]int(nil), group...),
		envelope: tx.Serialize(),
		hash:     tx.Hash(),
	}
}

func (l *TxLoader) TxHash() ([32]byte, error) {
	return l.hash, nil
}

func (l *TxLoader) Witness(index int, source Source) ([]byte, error) {
	if index < 0 {
		return nil, ErrIndexOutOfBound
	}
	global := index
	switch source {
	case SourceInput:
	case SourceGroupInput:
		if index >= len(l.group) {
			return nil, ErrIndexOutOfBound
		}
		global = l.group[index]
	default:
		return nil, fmt.Errorf("host: unknown witness source %v", source)
	}
	if global < 0 || global >= len(l.tx.Witnesses) {
		// Trailing group inputs may sit past the witness vector; an
		// absent witness reads as out of bound, never as empty bytes.
		return nil, ErrIndexOutOfBound
	}
	return l.tx.Witnesses[global], nil
}

func (l *TxLoader) EnvelopeWindow(offset uint32, length int) (Window, error) {
	if length < 0 {
		return Window{}, fmt.Errorf("host: negative window length %d", length)
	}
	if uint64(offset) >= uint64(len(l.envelope)) {
		return Window{}, nil
	}
	off := int(offset)
	remaining := len(l.envelope) - off
	n := length
	if n > remaining {
		n = remaining
	}
	return Window{
		Bytes:     l.envelope[off : off+n],
		Truncated: remaining > length,
	}, nil
}
