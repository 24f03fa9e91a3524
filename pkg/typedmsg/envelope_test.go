package typedmsg

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/blake2b"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/types"
)

func offsetWindow(inputsOff, outputsOff uint32) host.Window {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[:4], inputsOff)
	binary.LittleEndian.PutUint32(b[4:], outputsOff)
	return host.Window{Bytes: b, Truncated: true}
}

func TestInputsLenFromRealEnvelope(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		tx := testTx(n)
		p := NewParser(host.NewTxLoader(tx, nil))

		got, err := p.InputsLen()
		require.NoError(t, err)
		assert.Equal(t, n, got, "inputs=%d", n)
	}
}

func TestInputsLenFromOffsetPair(t *testing.T) {
	// Two 44-byte inputs plus the 4-byte count between the offsets.
	p := NewParser(&stubLoader{window: offsetWindow(100, 100+4+2*44)})

	got, err := p.InputsLen()
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestInputsLenRejectsShortEnvelope(t *testing.T) {
	p := NewParser(&stubLoader{window: host.Window{Bytes: []byte{1, 2, 3}}})

	_, err := p.InputsLen()
	require.Error(t, err)
	assert.Equal(t, ErrDecode, CodeOf(err))
}

func TestInputsLenRejectsOverlappingOffsets(t *testing.T) {
	p := NewParser(&stubLoader{window: offsetWindow(100, 100)})

	_, err := p.InputsLen()
	require.Error(t, err)
	assert.Equal(t, ErrDecode, CodeOf(err))
}

func TestInputsLenRejectsMisalignedSpan(t *testing.T) {
	p := NewParser(&stubLoader{window: offsetWindow(100, 100+4+43)})

	_, err := p.InputsLen()
	require.Error(t, err)
	assert.Equal(t, ErrDecode, CodeOf(err))
}

func TestInputsLenWrapsWindowFailure(t *testing.T) {
	probe := errors.New("window unavailable")
	p := NewParser(&stubLoader{windowErr: probe})

	_, err := p.InputsLen()
	require.Error(t, err)
	assert.Equal(t, ErrHost, CodeOf(err))
	assert.ErrorIs(t, err, probe)
}

func TestSkeletonHashWithoutSurplusWitnesses(t *testing.T) {
	// One witness per input and nothing after: only the transaction hash
	// goes into the skeleton.
	lock := make([]byte, 65)
	tx := testTx(2, actionWitness(lock, testMessage(0xaa)), nil)

	skeleton, err := NewParser(host.NewTxLoader(tx, []int{0})).SkeletonHash()
	require.NoError(t, err)

	txHash := tx.Hash()
	assert.Equal(t, blake2b.Sum256(txHash[:]), skeleton)
}

func TestSkeletonHashCoversOnlySurplusWitnesses(t *testing.T) {
	lock := make([]byte, 65)
	msg := testMessage(0xaa)
	surplus := []byte{0xca, 0xfe}
	tx := testTx(2, actionWitness(lock, msg), nil, surplus)
	p := NewParser(host.NewTxLoader(tx, []int{0}))

	skeleton, err := p.SkeletonHash()
	require.NoError(t, err)

	// Rebuilding the input-side witnesses leaves the skeleton alone.
	other := testTx(2, sighashWitness(lock), []byte{0xff, 0xee, 0xdd}, surplus)
	otherSkeleton, err := NewParser(host.NewTxLoader(other, []int{0})).SkeletonHash()
	require.NoError(t, err)
	assert.Equal(t, skeleton, otherSkeleton)

	// A surplus change does not.
	moved := testTx(2, actionWitness(lock, msg), nil, []byte{0xca, 0xff})
	movedSkeleton, err := NewParser(host.NewTxLoader(moved, []int{0})).SkeletonHash()
	require.NoError(t, err)
	assert.NotEqual(t, skeleton, movedSkeleton)
}

func TestFinalHashIsPure(t *testing.T) {
	p := NewParser(host.NewTxLoader(&types.Transaction{}, nil))

	skeleton := [32]byte{0x01}
	a := p.FinalHash(skeleton, []byte("m"))
	b := p.FinalHash(skeleton, []byte("m"))
	c := p.FinalHash(skeleton, []byte("n"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
