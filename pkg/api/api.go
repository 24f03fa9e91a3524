// Package api provides the high-level public API for typed message signing.
//
// This is the main entry point for applications embedding the library. It
// wraps the digest pipeline behind two calls:
//
//  1. SigningDigest - Computes the digest one script group signs
//  2. InspectWitnesses - Classifies every witness slot of a transaction
//
// On-chain lock scripts run the same pipeline against syscalls; here it
// runs against an in-memory transaction, so wallets and verifiers arrive
// at the same digest.
package api

import (
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/schemas"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/typedmsg"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

// SigningDigest validates the transaction's witness layout and computes the
// signing digest for one script group. group lists the global witness
// indices of the group's inputs, ascending; the first is the slot whose
// lock bytes come back for the signature.
//
// Failures carry a typedmsg.ErrorCode; see typedmsg.CodeOf.
func SigningDigest(tx *types.Transaction, group []int) (digest [32]byte, lock []byte, err error) {
	return typedmsg.NewParser(host.NewTxLoader(tx, group)).Parse()
}

// WitnessInfo describes how one witness slot reads under the extended
// witness schema.
type WitnessInfo struct {
	Index   int    // Global witness index
	Size    int    // Witness length in bytes
	Kind    string // Union variant name, or "raw" when undecodable
	Surplus bool   // Sits past the last input, covered by the digest
	Lock    int    // Signature slot size, -1 when the variant has none
	Actions int    // Actions in the carried message
}

// InspectWitnesses classifies every witness of the transaction. Witnesses
// that do not decode under the schema are reported as "raw", never as an
// error; arbitrary bytes are legal in slots owned by other lock scripts.
func InspectWitnesses(tx *types.Transaction) []WitnessInfo {
	infos := make([]WitnessInfo, len(tx.Witnesses))
	for i, raw := range tx.Witnesses {
		info := WitnessInfo{
			Index:   i,
			Size:    len(raw),
			Kind:    "raw",
			Surplus: i >= len(tx.Inputs),
			Lock:    -1,
		}
		if w, err := schemas.DecodeExtendedWitness(raw); err == nil {
			switch w := w.(type) {
			case *schemas.Sighash:
				info.Kind = "sighash"
				info.Lock = len(w.Lock)
			case *schemas.SighashWithAction:
				info.Kind = "sighash_with_action"
				info.Lock = len(w.Lock)
				info.Actions = len(w.Message.Actions)
			case *schemas.Otx:
				info.Kind = "otx"
			case *schemas.OtxSignature:
				info.Kind = "otx_signature"
			}
		}
		infos[i] = info
	}
	return infos
}
