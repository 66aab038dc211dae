package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/milltwin/pkg/components"
	"github.com/gonewx/milltwin/pkg/ecs"
)

// 投影参数：侧视图，X 向右，Y 向上，Z 越大越靠后
const (
	pixelsPerMeter = 24.0
	groundY        = 440.0
	depthShift     = 6.0 // 每米纵深向上偏移的像素
)

// 火柴人骨段长度（米）
const (
	thighLength   = 0.45
	shinLength    = 0.45
	torsoLength   = 0.6
	upperArmLen   = 0.3
	forearmLength = 0.28
	headRadius    = 0.12
)

var (
	skyColor    = color.RGBA{R: 38, G: 44, B: 56, A: 255}
	floorColor  = color.RGBA{R: 70, G: 72, B: 76, A: 255}
	workerColor = color.RGBA{R: 240, G: 200, B: 90, A: 255}
	smokeColor  = color.RGBA{R: 160, G: 160, B: 165, A: 120}
	rainColor   = color.RGBA{R: 140, G: 170, B: 220, A: 160}
)

// project 世界坐标转屏幕坐标
func project(x, y, z float64) (float32, float32) {
	sx := screenWidth/2 + x*pixelsPerMeter
	sy := groundY - y*pixelsPerMeter - z*depthShift
	return float32(sx), float32(sy)
}

// Draw renders the scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	vector.DrawFilledRect(screen, 0, groundY, screenWidth, screenHeight-groundY, floorColor, false)

	effectsOn := g.settings.GetSettings().EffectsEnabled
	if effectsOn {
		g.drawLights(screen)
		for _, s := range g.smokeStacks {
			drawSmoke(screen, s.Particles.Buffer.Positions)
		}
	}

	for _, id := range g.workers {
		g.drawWorker(screen, id)
	}

	if effectsOn && g.rain != nil {
		drawRain(screen, g.rain.Drops.Buffer.Positions)
	}

	g.drawHUD(screen)
}

// drawWorker 从骨骼变换画出一个侧视火柴人
func (g *Game) drawWorker(screen *ebiten.Image, id ecs.EntityID) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](g.entityManager, id)
	if !ok {
		return
	}
	skel, ok := ecs.GetComponent[*components.SkeletonComponent](g.entityManager, id)
	if !ok {
		return
	}
	r := skel.Refs

	hipX := pos.X + r.Hips.Position.X
	hipY := thighLength + shinLength + r.Hips.Position.Y

	// 腿：髋部前摆角，膝盖向后弯
	drawLimb(screen, pos.Z, hipX, hipY, r.LeftLeg.Rotation.X, -r.LeftShin.Rotation.X, thighLength, shinLength, 0.75)
	drawLimb(screen, pos.Z, hipX, hipY, r.RightLeg.Rotation.X, -r.RightShin.Rotation.X, thighLength, shinLength, 1)

	// 躯干前倾
	lean := r.Torso.Rotation.X
	neckX := hipX + math.Sin(lean)*torsoLength
	neckY := hipY + math.Cos(lean)*torsoLength
	x0, y0 := project(hipX, hipY, pos.Z)
	x1, y1 := project(neckX, neckY, pos.Z)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, workerColor, true)

	// 手臂从肩部下垂，前臂向前弯（前臂旋转为负）
	shoulderX, shoulderY := neckX, neckY-0.05
	drawArm(screen, pos.Z, shoulderX, shoulderY, r.LeftArm.Rotation.X, r.LeftForearm.Rotation.X, 0.75)
	drawArm(screen, pos.Z, shoulderX, shoulderY, r.RightArm.Rotation.X, r.RightForearm.Rotation.X, 1)

	// 头部随点头前后偏移
	nod := r.Head.Rotation.X
	headX := neckX + math.Sin(lean+nod)*headRadius
	headY := neckY + math.Cos(lean+nod)*headRadius + headRadius
	hx, hy := project(headX, headY, pos.Z)
	vector.DrawFilledCircle(screen, hx, hy, headRadius*pixelsPerMeter, workerColor, true)
}

// drawLimb 两段式腿：hipAngle 相对竖直向下的前摆角，bend 为膝部附加角
func drawLimb(screen *ebiten.Image, z, x, y, hipAngle, bend, upper, lower, shade float64) {
	kneeX := x + math.Sin(hipAngle)*upper
	kneeY := y - math.Cos(hipAngle)*upper
	footX := kneeX + math.Sin(hipAngle+bend)*lower
	footY := kneeY - math.Cos(hipAngle+bend)*lower

	clr := scaleColor(workerColor, shade)
	x0, y0 := project(x, y, z)
	x1, y1 := project(kneeX, kneeY, z)
	x2, y2 := project(footX, footY, z)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
	vector.StrokeLine(screen, x1, y1, x2, y2, 3, clr, true)
}

// drawArm 前臂旋转为负表示向前弯
func drawArm(screen *ebiten.Image, z, x, y, shoulder, forearm, shade float64) {
	drawLimb(screen, z, x, y, shoulder, -forearm, upperArmLen, forearmLength, shade)
}

func drawSmoke(screen *ebiten.Image, positions []float64) {
	for i := 0; i+2 < len(positions); i += 3 {
		x, y := project(positions[i], positions[i+1], positions[i+2])
		vector.DrawFilledCircle(screen, x, y, 4, smokeColor, true)
	}
}

func drawRain(screen *ebiten.Image, positions []float64) {
	for i := 0; i+2 < len(positions); i += 3 {
		x, y := project(positions[i], positions[i+1], positions[i+2])
		vector.StrokeLine(screen, x, y, x-1, y+6, 1, rainColor, false)
	}
}

// drawLights 应急灯沿屏幕顶部排列，亮度映射到透明度
func (g *Game) drawLights(screen *ebiten.Image) {
	n := len(g.lightLevels)
	for i, l := range g.lightLevels {
		x := float32(screenWidth) * (float32(i) + 0.5) / float32(n)
		alpha := math.Max(0, math.Min(1, l.Intensity/2))
		glow := color.RGBA{R: uint8(255 * alpha), G: uint8(40 * alpha), B: uint8(30 * alpha), A: uint8(255 * alpha)}
		vector.DrawFilledCircle(screen, x, 24, 14, glow, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.settings.GetSettings()
	status := "running"
	if g.registry.Paused() {
		status = "paused (window hidden)"
	}
	if !s.EffectsEnabled {
		status = "off"
	}
	msg := fmt.Sprintf(
		"state: %s  fatigue: %.1f  tier: %s\n"+
			"effects: %s  frame %d  t=%.1fs  lights: %v\n"+
			"[1-4] state  [F/G] fatigue  [Q] tier  [E] lights  [V] effects  [H] pause-when-hidden=%v  TPS %.0f",
		g.state, g.fatigue, g.settings.QualityTier(),
		status, g.registry.Frame(), g.registry.Elapsed(), g.lightsOn,
		s.PauseWhenHidden, ebiten.ActualTPS(),
	)
	ebitenutil.DebugPrint(screen, msg)
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}
