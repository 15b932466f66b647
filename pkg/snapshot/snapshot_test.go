// pkg/snapshot/snapshot_test.go
package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minirel/pkg/index"
	"minirel/pkg/schema"
	"minirel/pkg/table"
	"minirel/pkg/types"
)

// sample builds a table touching every scalar domain.
func sample(t *testing.T, kind index.Kind) *table.Table {
	t.Helper()
	s, err := schema.New("Sample",
		[]string{"a", "b", "c", "d", "e", "f", "g", "h"},
		[]types.ValueType{
			types.TypeInt8, types.TypeInt16, types.TypeInt32, types.TypeInt64,
			types.TypeFloat32, types.TypeFloat64, types.TypeChar, types.TypeText,
		},
		[]string{"d", "h"})
	require.NoError(t, err)

	tb := table.New(s, kind)
	for i := int64(0); i < 20; i++ {
		require.NoError(t, tb.Insert(types.Tuple{
			types.NewInt8(int8(-i)),
			types.NewInt16(int16(i * 100)),
			types.NewInt32(int32(i * 1000)),
			types.NewInt64(i),
			types.NewFloat32(float32(i) / 2),
			types.NewFloat64(float64(i) / 3),
			types.NewChar(rune('a' + i%26)),
			types.NewText("row"),
		}))
	}
	return tb
}

func requireSameTable(t *testing.T, want, got *table.Table) {
	t.Helper()
	require.Equal(t, want.Schema().Name, got.Schema().Name)
	require.Equal(t, want.Schema().Attrs, got.Schema().Attrs)
	require.Equal(t, want.Schema().Domains, got.Schema().Domains)
	require.Equal(t, want.Schema().Key, got.Schema().Key)
	require.Equal(t, want.IndexKind(), got.IndexKind())
	require.Equal(t, want.Size(), got.Size())
	for i, tu := range want.Tuples() {
		assert.True(t, got.Tuples()[i].Equal(tu), "tuple %d differs", i)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, kind := range []index.Kind{index.KindBPTree, index.KindExtHash, index.KindLinHash} {
		t.Run(kind.String(), func(t *testing.T) {
			tb := sample(t, kind)

			var buf bytes.Buffer
			require.NoError(t, Write(tb, &buf))

			got, err := Read(&buf)
			require.NoError(t, err)
			requireSameTable(t, tb, got)
		})
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE....")))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestReadRejectsBadVersion(t *testing.T) {
	tb := sample(t, index.KindBPTree)
	var buf bytes.Buffer
	require.NoError(t, Write(tb, &buf))

	data := buf.Bytes()
	data[4] = 99 // version byte follows the magic
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestReadRejectsTruncation(t *testing.T) {
	tb := sample(t, index.KindBPTree)
	var buf bytes.Buffer
	require.NoError(t, Write(tb, &buf))

	data := buf.Bytes()
	for _, cut := range []int{5, 10, len(data) / 2, len(data) - 1} {
		_, err := Read(bytes.NewReader(data[:cut]))
		assert.ErrorIs(t, err, ErrCorrupt, "truncated at %d", cut)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	tb := sample(t, index.KindLinHash)
	path := filepath.Join(t.TempDir(), "sample.mrel")

	require.NoError(t, SaveFile(tb, path))
	got, err := LoadFile(path)
	require.NoError(t, err)
	requireSameTable(t, tb, got)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.mrel"))
	assert.Error(t, err)
}
