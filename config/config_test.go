package config

import (
	"strings"
	"testing"

	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Run("empty document keeps defaults", func(t *testing.T) {
		cfg, err := Read(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("full document", func(t *testing.T) {
		cfg, err := Read(strings.NewReader(`
path: /var/lib/vdisk/disk.bin
log: /var/log/vdisk.log
geometry:
  cluster_size: 4096
  cluster_count: 256
`))
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/vdisk/disk.bin", cfg.Path)
		assert.Equal(t, "/var/log/vdisk.log", cfg.LogFile)
		assert.Equal(t, geometry.Geometry{ClusterSize: 4096, ClusterCount: 256}, cfg.Geometry)
	})

	t.Run("partial geometry", func(t *testing.T) {
		cfg, err := Read(strings.NewReader("geometry:\n  cluster_count: 8\n"))
		require.NoError(t, err)
		assert.Equal(t, uint32(1024), cfg.Geometry.ClusterSize)
		assert.Equal(t, uint32(8), cfg.Geometry.ClusterCount)
		assert.Equal(t, defaultDiskPath, cfg.Path)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Read(strings.NewReader("clusters: 8\n"))
		assert.Error(t, err)
	})

	t.Run("invalid geometry", func(t *testing.T) {
		_, err := Read(strings.NewReader("geometry:\n  cluster_size: 0\n"))
		assert.ErrorIs(t, err, errmsg.InvalidGeometry)
	})
}
