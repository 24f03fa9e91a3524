package typedmsg

import (
	"encoding/binary"
	"errors"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
)

// SkeletonHash hashes the signing preimage parts that do not depend on the
// typed message: the transaction hash, then every witness whose global
// index is at or past the input count, each prefixed with its byte length
// as a little-endian u64. Those trailing witnesses belong to no input, so
// without this they could change freely after signing.
func (p *Parser) SkeletonHash() ([32]byte, error) {
	var digest [32]byte

	txHash, err := p.ld.TxHash()
	if err != nil {
		return digest, hostErr("load transaction hash", err)
	}
	inputs, err := p.InputsLen()
	if err != nil {
		return digest, err
	}

	h := p.newHash()
	h.Write(txHash[:])
	for i := inputs; ; i++ {
		raw, err := p.ld.Witness(i, host.SourceInput)
		if errors.Is(err, host.ErrIndexOutOfBound) {
			break
		}
		if err != nil {
			return digest, hostErr("load witness", err)
		}
		binary.Write(h, binary.LittleEndian, uint64(len(raw)))
		h.Write(raw)
	}
	copy(digest[:], h.Sum(nil))
	return digest, nil
}

// FinalHash binds a skeleton hash to the serialized typed message, again
// length-prefixed, yielding the digest that goes under the signature.
func (p *Parser) FinalHash(skeleton [32]byte, message []byte) [32]byte {
	h := p.newHash()
	h.Write(skeleton[:])
	binary.Write(h, binary.LittleEndian, uint64(len(message)))
	h.Write(message)

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
