package utils

import (
	"math"
	"testing"
)

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 10, 20, 0, 10},
		{"终点", 10, 20, 1, 20},
		{"中点", 10, 20, 0.5, 15},
		{"外推", 0, 1, 1.5, 1.5},
		{"负向外推", 0, 1, -0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{4, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestWrap01 测试相位折回
func TestWrap01(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"零", 0, 0},
		{"区间内", 0.4, 0.4},
		{"正好一个周期", 1, 0},
		{"超过一个周期", 2.25, 0.25},
		{"负数", -0.25, 0.75},
		{"负整数", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap01(tt.input)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Wrap01(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
			if result < 0 || result >= 1 {
				t.Errorf("Wrap01(%v) = %v 超出 [0,1)", tt.input, result)
			}
		})
	}

	t.Run("极小负数不会返回1", func(t *testing.T) {
		if got := Wrap01(-1e-20); got < 0 || got >= 1 {
			t.Errorf("Wrap01(-1e-20) = %v, 超出 [0,1)", got)
		}
	})
}

func TestDampFactor(t *testing.T) {
	if got := DampFactor(0, 0.15); got != 0 {
		t.Errorf("zero delta should not move, got %v", got)
	}
	if got := DampFactor(-1, 0.15); got != 0 {
		t.Errorf("negative delta should not move, got %v", got)
	}
	if got := DampFactor(0.016, 0); got != 1 {
		t.Errorf("zero smoothing should snap, got %v", got)
	}
	k := DampFactor(0.016, 0.15)
	if k <= 0 || k >= 1 {
		t.Errorf("DampFactor(0.016, 0.15) = %v, want (0,1)", k)
	}
}

// TestDamp_FramerateIndependent 两次半步与一次整步结果一致
func TestDamp_FramerateIndependent(t *testing.T) {
	const smoothing = 0.15
	whole := Damp(0, 1, smoothing, 1.0/30)

	half := Damp(0, 1, smoothing, 1.0/60)
	half = Damp(half, 1, smoothing, 1.0/60)

	if math.Abs(whole-half) > 1e-12 {
		t.Errorf("30fps step %v != two 60fps steps %v", whole, half)
	}
}

// TestDamp_MonotonicApproach 对静止目标单调逼近且不越过
func TestDamp_MonotonicApproach(t *testing.T) {
	value := -2.0
	const target = 3.0
	prevDist := math.Abs(target - value)

	for i := 0; i < 200; i++ {
		value = Damp(value, target, 0.15, 1.0/60)
		if value > target {
			t.Fatalf("step %d overshoot: %v > %v", i, value, target)
		}
		dist := math.Abs(target - value)
		if dist >= prevDist {
			t.Fatalf("step %d distance did not shrink: %v >= %v", i, dist, prevDist)
		}
		prevDist = dist
	}
}
