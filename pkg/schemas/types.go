// Package schemas implements the molecule-encoded witness layout carried by
// typed-message transactions.
//
// The schema (molecule):
//
//	array Byte32 [byte; 32];
//	vector Bytes <byte>;
//
//	table Action {
//	    script_info_hash: Byte32,
//	    script_hash:      Byte32,
//	    data:             Bytes,
//	}
//	vector ActionVec <Action>;
//	table Message { actions: ActionVec }
//
//	table Sighash           { lock: Bytes }
//	table SighashWithAction { lock: Bytes, message: Message }
//
//	union ExtendedWitness {
//	    SighashWithAction,
//	    Sighash,
//	    Otx,
//	    OtxSignature,
//	}
//
// Union item ids are positional. Decoding is strict in the sense of the
// generated readers in the ckb-typed-message schemas crate: size headers,
// offset tables and field lengths are all verified before any field is
// handed out.
//
// This package is deliberately not a general molecule engine; it covers
// exactly the entities above.
package schemas

// Union item ids of ExtendedWitness, in schema declaration order.
const (
	IDSighashWithAction uint32 = 0
	IDSighash           uint32 = 1
	IDOtx               uint32 = 2
	IDOtxSignature      uint32 = 3
)

// ExtendedWitness is a decoded top-level witness union variant.
type ExtendedWitness interface {
	// UnionID reports the molecule union item id of the variant.
	UnionID() uint32
	// Serialize returns the variant payload, without the 4-byte id header.
	Serialize() []byte
}

// Sighash authorizes the current script group without carrying a message of
// its own; the message is borrowed from the transaction's unique
// SighashWithAction witness.
type Sighash struct {
	Lock []byte
}

// SighashWithAction authorizes the current script group and carries the
// message the signing digest commits to. A transaction must contain exactly
// one witness of this variant.
type SighashWithAction struct {
	Lock    []byte
	Message Message
}

// Otx is an open-transaction witness. Its internal layout belongs to the otx
// flow and is carried here opaquely; the sighash pipeline treats it as a
// foreign variant.
type Otx struct {
	Raw []byte
}

// OtxSignature closes a run of open-transaction witnesses. Carried opaquely,
// like Otx.
type OtxSignature struct {
	Raw []byte
}

func (*Sighash) UnionID() uint32           { return IDSighash }
func (*SighashWithAction) UnionID() uint32 { return IDSighashWithAction }
func (*Otx) UnionID() uint32               { return IDOtx }
func (*OtxSignature) UnionID() uint32      { return IDOtxSignature }

// Action binds an application payload to the script that must witness it.
type Action struct {
	ScriptInfoHash [32]byte
	ScriptHash     [32]byte
	Data           []byte
}

// Message is the application payload covered by the signing digest. The
// digest commits to the exact serialized bytes, so a decoded Message keeps
// the bytes it was parsed from; AsSlice returns them unchanged.
type Message struct {
	Actions []Action

	// raw is the wire form this message was decoded from. Empty for
	// messages built in memory; AsSlice then falls back to the canonical
	// encoding of Actions.
	raw []byte
}

// NewMessage builds a Message whose wire form is the canonical encoding of
// the given actions.
func NewMessage(actions ...Action) Message {
	m := Message{Actions: actions}
	m.raw = m.encode()
	return m
}

// AsSlice returns the serialized message: the decoded wire bytes when the
// message came off a witness, the canonical encoding otherwise.
func (m Message) AsSlice() []byte {
	if m.raw != nil {
		return m.raw
	}
	return m.encode()
}
