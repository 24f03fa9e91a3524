package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/schemas"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/typedmsg"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

func fixtureTx() *types.Transaction {
	msg := schemas.NewMessage(schemas.Action{
		ScriptInfoHash: [32]byte{0x11},
		ScriptHash:     [32]byte{0x22},
		Data:           []byte{0x2a},
	})
	carrier := &schemas.SighashWithAction{Lock: make([]byte, 65), Message: msg}
	plain := &schemas.Sighash{Lock: make([]byte, 65)}
	return &types.Transaction{
		Inputs: []types.CellInput{
			{PreviousOutput: types.OutPoint{TxHash: [32]byte{1}, Index: 0}},
			{PreviousOutput: types.OutPoint{TxHash: [32]byte{1}, Index: 1}},
		},
		Outputs: []types.CellOutput{{
			Capacity: 500,
			Lock:     types.Script{CodeHash: [32]byte{0x99}, HashType: types.HashTypeType},
		}},
		OutputsData: [][]byte{{}},
		Witnesses: [][]byte{
			schemas.SerializeExtendedWitness(carrier),
			schemas.SerializeExtendedWitness(plain),
			{0xde, 0xad},
		},
	}
}

func TestSigningDigestMatchesManualPipeline(t *testing.T) {
	tx := fixtureTx()

	digest, lock, err := SigningDigest(tx, []int{0})
	require.NoError(t, err)

	wantDigest, wantLock, err := typedmsg.NewParser(host.NewTxLoader(tx, []int{0})).Parse()
	require.NoError(t, err)
	assert.Equal(t, wantDigest, digest)
	assert.Equal(t, wantLock, lock)
}

func TestSigningDigestReportsPipelineCodes(t *testing.T) {
	tx := fixtureTx()
	tx.Witnesses[0] = schemas.SerializeExtendedWitness(&schemas.Sighash{Lock: make([]byte, 65)})

	_, _, err := SigningDigest(tx, []int{0})
	require.Error(t, err)
	assert.Equal(t, typedmsg.ErrMissingActionWitness, typedmsg.CodeOf(err))
}

func TestInspectWitnesses(t *testing.T) {
	infos := InspectWitnesses(fixtureTx())
	require.Len(t, infos, 3)

	assert.Equal(t, "sighash_with_action", infos[0].Kind)
	assert.Equal(t, 65, infos[0].Lock)
	assert.Equal(t, 1, infos[0].Actions)
	assert.False(t, infos[0].Surplus)

	assert.Equal(t, "sighash", infos[1].Kind)
	assert.Equal(t, 65, infos[1].Lock)
	assert.Zero(t, infos[1].Actions)

	assert.Equal(t, "raw", infos[2].Kind)
	assert.Equal(t, -1, infos[2].Lock)
	assert.Equal(t, 2, infos[2].Size)
	assert.True(t, infos[2].Surplus, "third slot sits past the two inputs")
}

func TestInspectWitnessesClassifiesOtxVariants(t *testing.T) {
	tx := &types.Transaction{
		Witnesses: [][]byte{
			schemas.SerializeExtendedWitness(&schemas.Otx{Raw: []byte{1, 2}}),
			schemas.SerializeExtendedWitness(&schemas.OtxSignature{Raw: []byte{3}}),
		},
	}

	infos := InspectWitnesses(tx)
	require.Len(t, infos, 2)
	assert.Equal(t, "otx", infos[0].Kind)
	assert.Equal(t, "otx_signature", infos[1].Kind)
}
