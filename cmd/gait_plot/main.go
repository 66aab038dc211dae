// Package main renders the gait curves and the per-state joint trajectories to
// PNG charts, for tuning presets without running the viewer.
//
// Usage:
//
//	go run ./cmd/gait_plot [flags]
//
// Flags:
//
//	--out <dir>        Output directory (default: gait_plots)
//	--samples <n>      Samples per cycle (default: 240)
//	--fatigue <f>      Fatigue used for the walking trajectory (default: 0)
//	--config <path>    Scene config with preset overrides (optional)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/gonewx/milltwin/pkg/config"
	"github.com/gonewx/milltwin/pkg/gait"
)

var (
	outFlag     = flag.String("out", "gait_plots", "Output directory")
	samplesFlag = flag.Int("samples", 240, "Samples per gait cycle")
	fatigueFlag = flag.Float64("fatigue", 0, "Fatigue for the walking trajectory")
	configFlag  = flag.String("config", "", "Scene config with preset overrides")
)

// series 一条命名曲线
type series struct {
	name string
	ys   []float64
}

// phaseGrid 均匀分布在 [0,1] 的相位采样点
func phaseGrid(n int) []float64 {
	if n < 2 {
		n = 2
	}
	return floats.Span(make([]float64, n), 0, 1)
}

// sampleCurve 在每个相位上求值
func sampleCurve(phases []float64, f func(float64) float64) []float64 {
	ys := make([]float64, len(phases))
	for i, p := range phases {
		ys[i] = f(p)
	}
	return ys
}

// curveSeries 基础周期曲线
func curveSeries(phases []float64) []series {
	return []series{
		{"leg swing", sampleCurve(phases, gait.LegSwingCurve)},
		{"right knee", sampleCurve(phases, gait.RightKneeFlexion)},
		{"left knee", sampleCurve(phases, gait.LeftKneeFlexion)},
		{"vertical bob", sampleCurve(phases, gait.VerticalBobCurve)},
		{"hip rotation", sampleCurve(phases, gait.HipRotationCurve)},
		{"arm swing", sampleCurve(phases, gait.ArmSwingCurve)},
	}
}

// stateSeries 各状态下某个关节的目标轨迹
func stateSeries(phases []float64, presets gait.PresetTable, fatigue float64, joint func(gait.GaitPose) float64) []series {
	states := []gait.MovementState{gait.StateIdle, gait.StateWalking, gait.StateRunning}
	out := make([]series, 0, len(states)+1)
	for _, s := range states {
		f := 0.0
		if s == gait.StateWalking {
			f = fatigue
		}
		params := presets.ForState(s, f)
		out = append(out, series{
			name: s.String(),
			ys: sampleCurve(phases, func(p float64) float64 {
				return joint(gait.CalculateGaitPose(p, params, 1))
			}),
		})
	}
	out = append(out, series{
		name: "walking (tired)",
		ys: sampleCurve(phases, func(p float64) float64 {
			return joint(gait.CalculateGaitPose(p, presets.ForState(gait.StateWalking, 1), 1))
		}),
	})
	return out
}

// savePlot 画出多条曲线并保存为 PNG
func savePlot(path, title, yLabel string, phases []float64, all []series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Cycle phase"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i, s := range all {
		pts := make(plotter.XYs, len(phases))
		for j := range phases {
			pts[j] = plotter.XY{X: phases[j], Y: s.ys[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build line %q: %w", s.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func loadPresets(path string) (gait.PresetTable, error) {
	if path == "" {
		return gait.DefaultPresets(), nil
	}
	cfg, err := config.LoadSimConfig(path)
	if err != nil {
		return gait.PresetTable{}, err
	}
	return cfg.Gait.PresetTable()
}

func main() {
	flag.Parse()

	presets, err := loadPresets(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}

	if err := os.MkdirAll(*outFlag, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	phases := phaseGrid(*samplesFlag)

	charts := []struct {
		file, title, yLabel string
		data                []series
	}{
		{"curves.png", "Gait curves", "Value", curveSeries(phases)},
		{"right_hip.png", "Right hip swing by state", "Rotation (rad)",
			stateSeries(phases, presets, *fatigueFlag, func(p gait.GaitPose) float64 { return p.RightHip.X })},
		{"right_knee.png", "Right knee flexion by state", "Rotation (rad)",
			stateSeries(phases, presets, *fatigueFlag, func(p gait.GaitPose) float64 { return p.RightKnee })},
		{"vertical_offset.png", "Pelvis vertical offset by state", "Offset (m)",
			stateSeries(phases, presets, *fatigueFlag, func(p gait.GaitPose) float64 { return p.VerticalOffset })},
	}

	for _, c := range charts {
		path := filepath.Join(*outFlag, c.file)
		if err := savePlot(path, c.title, c.yLabel, phases, c.data); err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("wrote %s\n", path)
		for _, s := range c.data {
			fmt.Printf("  %-16s min %+.4f  max %+.4f\n", s.name, floats.Min(s.ys), floats.Max(s.ys))
		}
	}
}
