package inspiral

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteSamples(t *testing.T) {
	samples := make(chan Sample, 2)
	samples <- Sample{0, 3.28, 0.274}
	samples <- Sample{1e-9, 3.2, 0.25} // One year later.
	close(samples)

	var buf bytes.Buffer
	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteSamples(&buf, ExportConfig{AsCSV: true, Epoch: j2000}, samples))

	r := csv.NewReader(strings.NewReader(buf.String()))
	r.Comment = '#'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"t", "a", "e", "jd"},
		{"0", "3.28", "0.274", "2451545.000000"},
		{"1e-09", "3.2", "0.25", "2451910.250000"},
	}, records)
	require.True(t, strings.HasPrefix(buf.String(), "# Creation date (UTC): "))
}

func TestTrajectoryExport(t *testing.T) {
	dir := t.TempDir()
	b, err := psr(t).WithSamples(50)
	require.NoError(t, err)
	traj := b.EvolveUntil(0, GigayearsToSeconds(1))

	withConfigChange(t, func(c *_inspiralconfig) { c.outputDir = dir }, func() {
		require.NoError(t, traj.Export(ExportConfig{Filename: "psr"}), "useless config")
		_, err := os.Stat(filepath.Join(dir, "inspiral-psr.csv"))
		require.True(t, os.IsNotExist(err), "useless config wrote a file")

		require.NoError(t, traj.Export(ExportConfig{Filename: "psr", AsCSV: true}))
		f, err := os.Open(filepath.Join(dir, "inspiral-psr.csv"))
		require.NoError(t, err)
		defer f.Close()
		r := csv.NewReader(f)
		r.Comment = '#'
		records, err := r.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, traj.Len()+1)
		require.Equal(t, []string{"t", "a", "e"}, records[0])
		require.Equal(t, "0", records[1][0])
		require.Equal(t, "1", records[traj.Len()][0])
	})

	missing := filepath.Join(dir, "does", "not", "exist")
	withConfigChange(t, func(c *_inspiralconfig) { c.outputDir = missing }, func() {
		require.Error(t, traj.Export(ExportConfig{Filename: "psr", AsCSV: true}))
	})
}
