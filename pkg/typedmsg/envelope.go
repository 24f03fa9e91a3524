package typedmsg

import "encoding/binary"

// Serialized-transaction geometry. The envelope is a molecule table whose
// first field is the raw transaction, itself a table whose fourth and fifth
// offsets locate the inputs and outputs vectors. Both table headers are
// fixed-size, so the two offsets always sit at bytes 28..36 of the envelope.
const (
	inputsOffsetPos = 28 // absolute position of the raw table's inputs offset
	offsetPairLen   = 8  // inputs offset followed by outputs offset
	cellInputSize   = 44 // serialized cell input: since (8) + out point (36)
)

// InputsLen derives the transaction's input count from the serialized
// envelope without decoding it. The distance between the inputs and outputs
// offsets spans exactly the inputs vector, a 4-byte count followed by
// 44-byte items, so the count falls out of the offset pair alone.
func (p *Parser) InputsLen() (int, error) {
	win, err := p.ld.EnvelopeWindow(inputsOffsetPos, offsetPairLen)
	if err != nil {
		return 0, hostErr("load envelope window", err)
	}
	if len(win.Bytes) < offsetPairLen {
		return 0, newError(ErrDecode, "envelope ends inside the offset pair at byte %d", inputsOffsetPos)
	}
	inputsOff := uint64(binary.LittleEndian.Uint32(win.Bytes[:4]))
	outputsOff := uint64(binary.LittleEndian.Uint32(win.Bytes[4:]))
	if outputsOff < inputsOff+4 {
		return 0, newError(ErrDecode, "outputs offset %d overlaps inputs vector at %d", outputsOff, inputsOff)
	}
	span := outputsOff - inputsOff - 4
	if span%cellInputSize != 0 {
		return 0, newError(ErrDecode, "inputs span %d is not a multiple of %d", span, cellInputSize)
	}
	return int(span / cellInputSize), nil
}
