package types

import (
	"encoding/binary"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/blake2b"
)

// Serialize renders the 36-byte out point.
func (o *OutPoint) Serialize() []byte {
	out := make([]byte, OutPointSize)
	copy(out, o.TxHash[:])
	binary.LittleEndian.PutUint32(out[32:], o.Index)
	return out
}

// Serialize renders the 44-byte cell input.
func (i *CellInput) Serialize() []byte {
	out := make([]byte, 8, CellInputSize)
	binary.LittleEndian.PutUint64(out, i.Since)
	return append(out, i.PreviousOutput.Serialize()...)
}

// Serialize renders the 37-byte cell dep.
func (d *CellDep) Serialize() []byte {
	out := make([]byte, 0, CellDepSize)
	out = append(out, d.OutPoint.Serialize()...)
	return append(out, byte(d.DepType))
}

// Serialize renders the Script table.
func (s *Script) Serialize() []byte {
	return encodeTable(s.CodeHash[:], []byte{byte(s.HashType)}, encodeBytes(s.Args))
}

// Hash is the script hash cells and witnesses refer to this script by.
func (s *Script) Hash() [32]byte {
	return blake2b.Sum256(s.Serialize())
}

// Serialize renders the CellOutput table. An absent type script encodes as
// an empty option field.
func (o *CellOutput) Serialize() []byte {
	var typeScript []byte
	if o.Type != nil {
		typeScript = o.Type.Serialize()
	}
	capacity := make([]byte, 8)
	binary.LittleEndian.PutUint64(capacity, o.Capacity)
	return encodeTable(capacity, o.Lock.Serialize(), typeScript)
}

// SerializeRaw renders the RawTransaction table. With every field before
// inputs occupying one 4-byte offset entry, the inputs and outputs offsets
// always land at envelope bytes 28 and 32; the envelope reader depends on
// that.
func (tx *Transaction) SerializeRaw() []byte {
	return encodeTable(
		encodeUint32(tx.Version),
		encodeCellDeps(tx.CellDeps),
		encodeHeaderDeps(tx.HeaderDeps),
		encodeInputs(tx.Inputs),
		encodeOutputs(tx.Outputs),
		encodeBytesVec(tx.OutputsData),
	)
}

// Serialize renders the full molecule Transaction: the raw part plus the
// witnesses.
func (tx *Transaction) Serialize() []byte {
	return encodeTable(tx.SerializeRaw(), encodeBytesVec(tx.Witnesses))
}

// Hash is the transaction hash: the CKB digest of the raw part.
func (tx *Transaction) Hash() [32]byte {
	return blake2b.Sum256(tx.SerializeRaw())
}

func encodeUint32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

func encodeCellDeps(deps []CellDep) []byte {
	out := make([]byte, 4, 4+CellDepSize*len(deps))
	binary.LittleEndian.PutUint32(out, uint32(len(deps)))
	for i := range deps {
		out = append(out, deps[i].Serialize()...)
	}
	return out
}

func encodeHeaderDeps(deps [][32]byte) []byte {
	out := make([]byte, 4, 4+32*len(deps))
	binary.LittleEndian.PutUint32(out, uint32(len(deps)))
	for i := range deps {
		out = append(out, deps[i][:]...)
	}
	return out
}

func encodeInputs(inputs []CellInput) []byte {
	out := make([]byte, 4, 4+CellInputSize*len(inputs))
	binary.LittleEndian.PutUint32(out, uint32(len(inputs)))
	for i := range inputs {
		out = append(out, inputs[i].Serialize()...)
	}
	return out
}

func encodeOutputs(outputs []CellOutput) []byte {
	items := make([][]byte, len(outputs))
	for i := range outputs {
		items[i] = outputs[i].Serialize()
	}
	return encodeTable(items...)
}

func encodeBytesVec(items [][]byte) []byte {
	parts := make([][]byte, len(items))
	for i := range items {
		parts[i] = encodeBytes(items[i])
	}
	return encodeTable(parts...)
}

func encodeBytes(b []byte) []byte {
	out := make([]byte, 4+len(b))
	binary.LittleEndian.PutUint32(out, uint32(len(b)))
	copy(out[4:], b)
	return out
}

// encodeTable assembles a molecule table; dynamic vectors share the layout.
func encodeTable(parts ...[]byte) []byte {
	header := 4 + 4*len(parts)
	size := header
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, header, size)
	binary.LittleEndian.PutUint32(out, uint32(size))
	offset := header
	for i, p := range parts {
		binary.LittleEndian.PutUint32(out[4+4*i:], uint32(offset))
		offset += len(p)
	}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
