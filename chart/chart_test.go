package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweep(t *testing.T) []pond.SweepPoint {
	t.Helper()
	p := pond.Params{
		ThetaG: 10, ThetaP1: 30,
		FlowP: 0.4, FlowH: 17,
		RSHX: 0.14, RGHX: 0.21,
		LSHX: 230, LGHX: 183,
	}.WithWaterDefaults()

	flows, err := pond.FlowRange(4, 40, 4)
	require.NoError(t, err)
	points, err := pond.Sweep(context.Background(), pond.NewSolver(pond.Settings{}), p, flows, 0)
	require.NoError(t, err)
	return points
}

func TestSaveSweep(t *testing.T) {
	points := sweep(t)
	dir := t.TempDir()

	png := filepath.Join(dir, "sweep.png")
	require.NoError(t, SaveSweep(points, png))
	data, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	svg := filepath.Join(dir, "sweep.SVG")
	require.NoError(t, SaveSweep(points, svg))
	data, err = os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestSaveSweepErrors(t *testing.T) {
	dir := t.TempDir()

	err := SaveSweep([]pond.SweepPoint{{FlowH: 1}}, filepath.Join(dir, "a.png"))
	assert.ErrorIs(t, err, ErrNoConfirmedPoints)

	err = SaveSweep(sweep(t), filepath.Join(dir, "a.xyz"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.xyz"))
}
