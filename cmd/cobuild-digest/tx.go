package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

// Transaction fixtures use the node RPC's JSON conventions: byte strings
// and integers are both "0x..." strings. Decoding stays in the CLI so the
// library types carry no JSON concerns.

type hexBytes []byte

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("byte string %q lacks 0x prefix", s)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	*h = b
	return nil
}

type hexUint uint64

func (h *hexUint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("number %q lacks 0x prefix", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return err
	}
	*h = hexUint(v)
	return nil
}

type jsonOutPoint struct {
	TxHash hexBytes `json:"tx_hash"`
	Index  hexUint  `json:"index"`
}

type jsonCellDep struct {
	OutPoint jsonOutPoint `json:"out_point"`
	DepType  string       `json:"dep_type"`
}

type jsonInput struct {
	Since          hexUint      `json:"since"`
	PreviousOutput jsonOutPoint `json:"previous_output"`
}

type jsonScript struct {
	CodeHash hexBytes `json:"code_hash"`
	HashType string   `json:"hash_type"`
	Args     hexBytes `json:"args"`
}

type jsonOutput struct {
	Capacity hexUint     `json:"capacity"`
	Lock     jsonScript  `json:"lock"`
	Type     *jsonScript `json:"type"`
}

type jsonTx struct {
	Version     hexUint       `json:"version"`
	CellDeps    []jsonCellDep `json:"cell_deps"`
	HeaderDeps  []hexBytes    `json:"header_deps"`
	Inputs      []jsonInput   `json:"inputs"`
	Outputs     []jsonOutput  `json:"outputs"`
	OutputsData []hexBytes    `json:"outputs_data"`
	Witnesses   []hexBytes    `json:"witnesses"`
}

func loadTransaction(path string) (*types.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jtx jsonTx
	if err := json.Unmarshal(data, &jtx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return jtx.toTransaction()
}

func (jtx *jsonTx) toTransaction() (*types.Transaction, error) {
	tx := &types.Transaction{Version: uint32(jtx.Version)}

	for i, dep := range jtx.CellDeps {
		op, err := dep.OutPoint.toOutPoint()
		if err != nil {
			return nil, fmt.Errorf("cell dep %d: %w", i, err)
		}
		dt, err := parseDepType(dep.DepType)
		if err != nil {
			return nil, fmt.Errorf("cell dep %d: %w", i, err)
		}
		tx.CellDeps = append(tx.CellDeps, types.CellDep{OutPoint: op, DepType: dt})
	}
	for i, h := range jtx.HeaderDeps {
		hash, err := toHash32(h)
		if err != nil {
			return nil, fmt.Errorf("header dep %d: %w", i, err)
		}
		tx.HeaderDeps = append(tx.HeaderDeps, hash)
	}
	for i, in := range jtx.Inputs {
		op, err := in.PreviousOutput.toOutPoint()
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, types.CellInput{Since: uint64(in.Since), PreviousOutput: op})
	}
	for i, out := range jtx.Outputs {
		lock, err := out.Lock.toScript()
		if err != nil {
			return nil, fmt.Errorf("output %d lock: %w", i, err)
		}
		o := types.CellOutput{Capacity: uint64(out.Capacity), Lock: lock}
		if out.Type != nil {
			ts, err := out.Type.toScript()
			if err != nil {
				return nil, fmt.Errorf("output %d type: %w", i, err)
			}
			o.Type = &ts
		}
		tx.Outputs = append(tx.Outputs, o)
	}
	for _, d := range jtx.OutputsData {
		tx.OutputsData = append(tx.OutputsData, d)
	}
	for _, w := range jtx.Witnesses {
		tx.Witnesses = append(tx.Witnesses, w)
	}
	return tx, nil
}

func (jop *jsonOutPoint) toOutPoint() (types.OutPoint, error) {
	hash, err := toHash32(jop.TxHash)
	if err != nil {
		return types.OutPoint{}, err
	}
	return types.OutPoint{TxHash: hash, Index: uint32(jop.Index)}, nil
}

func (js *jsonScript) toScript() (types.Script, error) {
	hash, err := toHash32(js.CodeHash)
	if err != nil {
		return types.Script{}, err
	}
	ht, err := parseHashType(js.HashType)
	if err != nil {
		return types.Script{}, err
	}
	return types.Script{CodeHash: hash, HashType: ht, Args: js.Args}, nil
}

func toHash32(b []byte) ([32]byte, error) {
	var h [32]byte
	if len(b) != 32 {
		return h, fmt.Errorf("hash is %d bytes, want 32", len(b))
	}
	copy(h[:], b)
	return h, nil
}

func parseHashType(s string) (types.ScriptHashType, error) {
	switch s {
	case "data":
		return types.HashTypeData, nil
	case "type":
		return types.HashTypeType, nil
	case "data1":
		return types.HashTypeData1, nil
	case "data2":
		return types.HashTypeData2, nil
	}
	return 0, fmt.Errorf("unknown hash_type %q", s)
}

func parseDepType(s string) (types.DepType, error) {
	switch s {
	case "code":
		return types.DepTypeCode, nil
	case "dep_group":
		return types.DepTypeDepGroup, nil
	}
	return 0, fmt.Errorf("unknown dep_type %q", s)
}
