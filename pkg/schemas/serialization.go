package schemas

import "encoding/binary"

// Molecule wire layout, as far as this schema reaches:
//
//	union:   item-id (u32le) || item
//	table:   full-size (u32le) || field offsets (u32le each) || fields
//	dynvec:  same layout as a table; the item count follows from the first
//	         offset
//	fixvec:  item-count (u32le) || items   (Bytes is a fixvec of byte)
//	array:   items only (Byte32 is 32 raw bytes)
//
// All decoders verify the size headers and offset tables before touching a
// field. Decoded values alias the input buffer; callers own the buffer and
// must not mutate it while the decoded value is in use.

// DecodeExtendedWitness parses witness bytes as the ExtendedWitness union.
func DecodeExtendedWitness(data []byte) (ExtendedWitness, error) {
	if len(data) < 4 {
		return nil, decodeErrf("witness of %d bytes is shorter than a union header", len(data))
	}
	id := binary.LittleEndian.Uint32(data[:4])
	payload := data[4:]
	switch id {
	case IDSighashWithAction:
		return decodeSighashWithAction(payload)
	case IDSighash:
		return decodeSighash(payload)
	case IDOtx:
		return &Otx{Raw: payload}, nil
	case IDOtxSignature:
		return &OtxSignature{Raw: payload}, nil
	}
	return nil, decodeErrf("unknown union id %d", id)
}

func decodeSighash(data []byte) (*Sighash, error) {
	fields, err := tableFields(data, 1)
	if err != nil {
		return nil, err
	}
	lock, err := bytesContent(fields[0])
	if err != nil {
		return nil, err
	}
	return &Sighash{Lock: lock}, nil
}

func decodeSighashWithAction(data []byte) (*SighashWithAction, error) {
	fields, err := tableFields(data, 2)
	if err != nil {
		return nil, err
	}
	lock, err := bytesContent(fields[0])
	if err != nil {
		return nil, err
	}
	message, err := DecodeMessage(fields[1])
	if err != nil {
		return nil, err
	}
	return &SighashWithAction{Lock: lock, Message: message}, nil
}

// DecodeMessage parses a serialized Message table. The returned Message
// remembers the input bytes as its wire form.
func DecodeMessage(data []byte) (Message, error) {
	fields, err := tableFields(data, 1)
	if err != nil {
		return Message{}, err
	}
	actions, err := decodeActionVec(fields[0])
	if err != nil {
		return Message{}, err
	}
	return Message{Actions: actions, raw: data}, nil
}

func decodeActionVec(data []byte) ([]Action, error) {
	items, err := dynvecItems(data)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	actions := make([]Action, len(items))
	for i, item := range items {
		a, err := decodeAction(item)
		if err != nil {
			return nil, err
		}
		actions[i] = a
	}
	return actions, nil
}

func decodeAction(data []byte) (Action, error) {
	fields, err := tableFields(data, 3)
	if err != nil {
		return Action{}, err
	}
	infoHash, err := byte32(fields[0])
	if err != nil {
		return Action{}, err
	}
	scriptHash, err := byte32(fields[1])
	if err != nil {
		return Action{}, err
	}
	payload, err := bytesContent(fields[2])
	if err != nil {
		return Action{}, err
	}
	return Action{ScriptInfoHash: infoHash, ScriptHash: scriptHash, Data: payload}, nil
}

// tableFields splits a molecule table into the expected number of field
// slices, verifying the size header and the offset table.
func tableFields(data []byte, count int) ([][]byte, error) {
	if len(data) < 4 {
		return nil, decodeErrf("table of %d bytes is shorter than its size header", len(data))
	}
	full := binary.LittleEndian.Uint32(data[:4])
	if int64(full) != int64(len(data)) {
		return nil, decodeErrf("table size header %d disagrees with %d payload bytes", full, len(data))
	}
	header := 4 + 4*count
	if len(data) < header {
		return nil, decodeErrf("table of %d bytes cannot hold %d field offsets", len(data), count)
	}
	offsets := make([]uint32, count+1)
	for i := 0; i < count; i++ {
		offsets[i] = binary.LittleEndian.Uint32(data[4+4*i : 8+4*i])
	}
	offsets[count] = full
	if offsets[0] != uint32(header) {
		return nil, decodeErrf("first field offset %d does not follow the %d-byte header", offsets[0], header)
	}
	fields := make([][]byte, count)
	for i := 0; i < count; i++ {
		if offsets[i] > offsets[i+1] || offsets[i+1] > full {
			return nil, decodeErrf("field offset %d out of order", offsets[i+1])
		}
		fields[i] = data[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}

// dynvecItems splits a molecule dynamic vector into its item slices. The item
// count is derived from the first offset; an empty vector is just its size
// header.
func dynvecItems(data []byte) ([][]byte, error) {
	if len(data) < 4 {
		return nil, decodeErrf("vector of %d bytes is shorter than its size header", len(data))
	}
	full := binary.LittleEndian.Uint32(data[:4])
	if int64(full) != int64(len(data)) {
		return nil, decodeErrf("vector size header %d disagrees with %d payload bytes", full, len(data))
	}
	if full == 4 {
		return nil, nil
	}
	if len(data) < 8 {
		return nil, decodeErrf("non-empty vector is missing its offset table")
	}
	first := binary.LittleEndian.Uint32(data[4:8])
	if first < 8 || first%4 != 0 {
		return nil, decodeErrf("vector first offset %d does not delimit an offset table", first)
	}
	if first > full {
		return nil, decodeErrf("vector first offset %d exceeds its %d-byte payload", first, full)
	}
	return tableFields(data, int(first-4)/4)
}

// bytesContent unwraps a molecule Bytes (fixvec of byte) into its content.
func bytesContent(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, decodeErrf("byte vector of %d bytes is shorter than its length header", len(data))
	}
	n := binary.LittleEndian.Uint32(data[:4])
	if uint64(n)+4 != uint64(len(data)) {
		return nil, decodeErrf("byte vector length %d disagrees with %d content bytes", n, len(data)-4)
	}
	return data[4:], nil
}

func byte32(data []byte) ([32]byte, error) {
	var out [32]byte
	if len(data) != 32 {
		return out, decodeErrf("expected a 32-byte field, got %d bytes", len(data))
	}
	copy(out[:], data)
	return out, nil
}

// SerializeExtendedWitness renders a variant as witness bytes: the 4-byte LE
// item id followed by the variant payload.
func SerializeExtendedWitness(w ExtendedWitness) []byte {
	payload := w.Serialize()
	out := make([]byte, 4, 4+len(payload))
	binary.LittleEndian.PutUint32(out, w.UnionID())
	return append(out, payload...)
}

// Serialize renders the Sighash table.
func (s *Sighash) Serialize() []byte {
	return encodeTable(encodeBytes(s.Lock))
}

// Serialize renders the SighashWithAction table. The message field uses the
// message's wire form, so re-serializing a decoded witness reproduces its
// bytes.
func (s *SighashWithAction) Serialize() []byte {
	return encodeTable(encodeBytes(s.Lock), s.Message.AsSlice())
}

// Serialize returns the opaque payload unchanged.
func (o *Otx) Serialize() []byte { return o.Raw }

// Serialize returns the opaque payload unchanged.
func (o *OtxSignature) Serialize() []byte { return o.Raw }

func (m Message) encode() []byte {
	return encodeTable(encodeActionVec(m.Actions))
}

func encodeActionVec(actions []Action) []byte {
	items := make([][]byte, len(actions))
	for i := range actions {
		items[i] = actions[i].serialize()
	}
	return encodeTable(items...)
}

func (a Action) serialize() []byte {
	return encodeTable(a.ScriptInfoHash[:], a.ScriptHash[:], encodeBytes(a.Data))
}

func encodeBytes(b []byte) []byte {
	out := make([]byte, 4+len(b))
	binary.LittleEndian.PutUint32(out, uint32(len(b)))
	copy(out[4:], b)
	return out
}

// encodeTable assembles a molecule table from its fields. Dynamic vectors
// share the layout, so this also assembles those.
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
