package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

func TestWitnessBySource(t *testing.T) {
	tx := &types.Transaction{Witnesses: [][]byte{{0xa0}, {0xa1}, {0xa2}}}
	ld := NewTxLoader(tx, []int{1, 2})

	w, err := ld.Witness(0, SourceGroupInput)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1}, w, "group index 0 maps to global index 1")

	w, err = ld.Witness(2, SourceInput)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa2}, w)

	_, err = ld.Witness(2, SourceGroupInput)
	assert.ErrorIs(t, err, ErrIndexOutOfBound)

	_, err = ld.Witness(3, SourceInput)
	assert.ErrorIs(t, err, ErrIndexOutOfBound)

	_, err = ld.Witness(-1, SourceInput)
	assert.ErrorIs(t, err, ErrIndexOutOfBound)
}

func TestGroupInputPastWitnessVector(t *testing.T) {
	// A group input whose global index has no witness reads as out of
	// bound rather than as an empty witness.
	tx := &types.Transaction{Witnesses: [][]byte{{0xa0}}}
	ld := NewTxLoader(tx, []int{0, 5})

	_, err := ld.Witness(1, SourceGroupInput)
	assert.ErrorIs(t, err, ErrIndexOutOfBound)
}

func TestUnknownSourceIsAnError(t *testing.T) {
	ld := NewTxLoader(&types.Transaction{}, nil)

	_, err := ld.Witness(0, Source(9))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIndexOutOfBound)
}

func TestTxHashMatchesTransaction(t *testing.T) {
	tx := &types.Transaction{Inputs: []types.CellInput{{Since: 7}}}
	ld := NewTxLoader(tx, nil)

	h, err := ld.TxHash()
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), h)
}

func TestEnvelopeWindow(t *testing.T) {
	tx := &types.Transaction{Inputs: []types.CellInput{{}, {}}}
	ld := NewTxLoader(tx, nil)
	env := tx.Serialize()
	require.Greater(t, len(env), 36)

	t.Run("interior read is truncated", func(t *testing.T) {
		w, err := ld.EnvelopeWindow(28, 8)
		require.NoError(t, err)
		assert.Equal(t, env[28:36], w.Bytes)
		assert.True(t, w.Truncated)
	})

	t.Run("read ending at the last byte is exact", func(t *testing.T) {
		w, err := ld.EnvelopeWindow(uint32(len(env)-8), 8)
		require.NoError(t, err)
		assert.Equal(t, env[len(env)-8:], w.Bytes)
		assert.False(t, w.Truncated)
	})

	t.Run("short tail comes back short", func(t *testing.T) {
		w, err := ld.EnvelopeWindow(uint32(len(env)-3), 8)
		require.NoError(t, err)
		assert.Equal(t, env[len(env)-3:], w.Bytes)
		assert.Len(t, w.Bytes, 3)
		assert.False(t, w.Truncated)
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		w, err := ld.EnvelopeWindow(uint32(len(env)+10), 8)
		require.NoError(t, err)
		assert.Empty(t, w.Bytes)
		assert.False(t, w.Truncated)
	})

	t.Run("negative length is rejected", func(t *testing.T) {
		_, err := ld.EnvelopeWindow(0, -1)
		require.Error(t, err)
	})
}
