// Package types models the subset of a CKB transaction this library needs to
// stand in for the execution environment: enough structure to serialize the
// molecule envelope, derive the transaction hash, and attach witnesses.
//
// Field layout and sizes follow the blockchain.mol schema of the CKB
// consensus format. The package encodes only; it is not a transaction
// builder and carries no signing or fee logic.
package types

// ScriptHashType selects how a script's code hash resolves to code.
type ScriptHashType uint8

const (
	HashTypeData  ScriptHashType = 0 // matches the dep cell's data hash
	HashTypeType  ScriptHashType = 1 // matches the dep cell's type script hash
	HashTypeData1 ScriptHashType = 2 // data hash, CKB-VM version 1
	HashTypeData2 ScriptHashType = 4 // data hash, CKB-VM version 2
)

// DepType selects how a cell dep is interpreted.
type DepType uint8

const (
	DepTypeCode     DepType = 0
	DepTypeDepGroup DepType = 1
)

// Serialized sizes of the fixed-size records.
const (
	OutPointSize  = 36 // tx_hash(32) + index(4)
	CellInputSize = 44 // since(8) + out_point(36)
	CellDepSize   = 37 // out_point(36) + dep_type(1)
)

// OutPoint references an output of an earlier transaction.
type OutPoint struct {
	TxHash [32]byte
	Index  uint32
}

// CellInput consumes the cell an out point references.
type CellInput struct {
	Since          uint64
	PreviousOutput OutPoint
}

// CellDep makes another cell's content available to the scripts of this
// transaction.
type CellDep struct {
	OutPoint OutPoint
	DepType  DepType
}

// Script locates code and carries its arguments.
type Script struct {
	CodeHash [32]byte
	HashType ScriptHashType
	Args     []byte
}

// CellOutput creates a cell.
type CellOutput struct {
	Capacity uint64
	Lock     Script
	Type     *Script
}

// Transaction is the in-memory transaction. Serialize produces the molecule
// envelope the execution environment serves windows of; Hash covers the raw
// part only, so witnesses never influence the transaction hash.
type Transaction struct {
	Version     uint32
	CellDeps    []CellDep
	HeaderDeps  [][32]byte
	Inputs      []CellInput
	Outputs     []CellOutput
	OutputsData [][]byte
	Witnesses   [][]byte
}
