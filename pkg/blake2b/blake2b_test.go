package blake2b

import (
	"testing"

	minio "github.com/minio/blake2b-simd"
	"github.com/stretchr/testify/require"
)

func TestNewDigestSize(t *testing.T) {
	h := New()
	require.Equal(t, Size, h.Size())

	sum := h.Sum(nil)
	require.Len(t, sum, Size)
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	data := []byte("typed message signing digest")

	h := New()
	h.Write(data[:7])
	h.Write(data[7:])
	var incremental [Size]byte
	copy(incremental[:], h.Sum(nil))

	require.Equal(t, Sum256(data), incremental)
}

func TestPersonalizationChangesDigest(t *testing.T) {
	data := []byte("ckb")

	plain, err := minio.New(&minio.Config{Size: Size})
	require.NoError(t, err)
	plain.Write(data)

	personalized := Sum256(data)
	require.NotEqual(t, plain.Sum(nil), personalized[:],
		"personalized digest must not collide with plain BLAKE2b-256")
}

func TestSumIsDeterministic(t *testing.T) {
	require.Equal(t, Sum256([]byte("a")), Sum256([]byte("a")))
	require.NotEqual(t, Sum256([]byte("a")), Sum256([]byte("b")))
}
