package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/geometry"
	"github.com/infinivision/vdisk/store"
	"github.com/infinivision/vdisk/sum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var small = geometry.Geometry{ClusterSize: 256, ClusterCount: 8}

func newMedium(t *testing.T, clusters map[int64][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.bin")
	s := store.New(store.Config{Geometry: small, LogWriter: new(bytes.Buffer)})
	require.NoError(t, s.Initialize(path, true))
	defer s.Close()
	for i, data := range clusters {
		require.NoError(t, s.WriteCluster(i, data))
	}
	return path
}

func TestUsed(t *testing.T) {
	path := newMedium(t, map[int64][]byte{
		1: []byte("one"),
		6: []byte("six"),
	})
	sc, err := Open(path, small)
	require.NoError(t, err)
	defer sc.Close()

	used := sc.Used()
	require.Len(t, used, 2)
	assert.Equal(t, int64(1), used[0].Index)
	assert.Equal(t, int64(6), used[1].Index)

	v, err := sc.View(6)
	require.NoError(t, err)
	assert.Equal(t, []byte("six"), v[:3])
	assert.Equal(t, sum.Cluster(v), used[1].Sum)

	_, err = sc.View(8)
	assert.ErrorIs(t, err, errmsg.IndexOutOfRange)
}

func TestEmptyMedium(t *testing.T) {
	sc, err := Open(newMedium(t, nil), small)
	require.NoError(t, err)
	defer sc.Close()
	assert.Empty(t, sc.Used())
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "disk.bin"), small)
		assert.ErrorIs(t, err, errmsg.NotFound)
	})

	t.Run("short medium", func(t *testing.T) {
		path := newMedium(t, nil)
		require.NoError(t, os.Truncate(path, int64(small.Size())-1))
		_, err := Open(path, small)
		assert.ErrorIs(t, err, errmsg.TruncatedMedium)
	})

	t.Run("long medium", func(t *testing.T) {
		path := newMedium(t, nil)
		require.NoError(t, os.Truncate(path, int64(small.Size())+1))
		_, err := Open(path, small)
		assert.ErrorIs(t, err, errmsg.InvalidGeometry)
	})

	t.Run("held by a store", func(t *testing.T) {
		path := newMedium(t, nil)
		s := store.New(store.Config{Geometry: small, LogWriter: new(bytes.Buffer)})
		require.NoError(t, s.Initialize(path, false))
		defer s.Close()

		_, err := Open(path, small)
		assert.ErrorIs(t, err, errmsg.ExclusiveLock)
	})
}

func TestScanBlocksStore(t *testing.T) {
	path := newMedium(t, nil)
	sc, err := Open(path, small)
	require.NoError(t, err)

	s := store.New(store.Config{Geometry: small, LogWriter: new(bytes.Buffer)})
	assert.ErrorIs(t, s.Initialize(path, false), errmsg.ExclusiveLock)

	require.NoError(t, sc.Close())
	require.NoError(t, sc.Close())
	require.NoError(t, s.Initialize(path, false))
	s.Close()
}

func TestCloseReportsRelease(t *testing.T) {
	sc, err := Open(newMedium(t, nil), small)
	require.NoError(t, err)
	require.NoError(t, sc.fp.Close())

	assert.ErrorIs(t, sc.Close(), errmsg.IO)
	assert.NoError(t, sc.Close())
}
