package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/milltwin/pkg/gait"
)

func TestPhaseGrid(t *testing.T) {
	phases := phaseGrid(5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, phases)
	assert.Len(t, phaseGrid(0), 2)
}

func TestStateSeries_IdleSmallerThanRun(t *testing.T) {
	phases := phaseGrid(64)
	all := stateSeries(phases, gait.DefaultPresets(), 0, func(p gait.GaitPose) float64 { return p.RightHip.X })
	require.Len(t, all, 4)

	span := func(ys []float64) float64 {
		lo, hi := ys[0], ys[0]
		for _, y := range ys {
			lo, hi = min(lo, y), max(hi, y)
		}
		return hi - lo
	}
	assert.Less(t, span(all[0].ys), span(all[2].ys), "idle should swing less than running")
	assert.Equal(t, "walking (tired)", all[3].name)
}

func TestSavePlot(t *testing.T) {
	phases := phaseGrid(32)
	path := filepath.Join(t.TempDir(), "curves.png")

	require.NoError(t, savePlot(path, "test", "value", phases, curveSeries(phases)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLoadPresets_Default(t *testing.T) {
	presets, err := loadPresets("")
	require.NoError(t, err)
	assert.Equal(t, gait.DefaultPresets(), presets)
}
