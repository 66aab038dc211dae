package utils

import "math"

// Scalar helpers (标量工具函数)
//
// 步态曲线、参数混合与姿态阻尼共用的基础数学函数。
// 全部为纯函数，对任意有限输入都返回有限值。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 精确返回 a，t=1 精确返回 b；t 不做限制，超出 [0,1] 时外推
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Wrap01 将任意相位折回 [0, 1)
//
// 负数同样折回正区间，例如 -0.25 → 0.75。
func Wrap01(v float64) float64 {
	w := math.Mod(v, 1)
	if w < 0 {
		w += 1
	}
	// -1e-20 + 1 在浮点下等于 1
	if w >= 1 {
		w = 0
	}
	return w
}

// DampFactor 帧率无关的指数阻尼系数
//
// 公式：1 - exp(-delta/smoothing)
//
// 返回值始终在 [0, 1] 内：
//   - delta <= 0 返回 0（不移动）
//   - smoothing <= 0 返回 1（直接到达目标）
func DampFactor(delta, smoothing float64) float64 {
	if delta <= 0 {
		return 0
	}
	if smoothing <= 0 {
		return 1
	}
	return 1 - math.Exp(-delta/smoothing)
}

// Damp 将 value 以指数方式逼近 target
//
// 与直接 Lerp(value, target, k) 不同，结果与帧率无关：
// 两次 delta/2 的调用与一次 delta 的调用得到相同位置。
// 对静止目标单调逼近，不会越过目标。
func Damp(value, target, smoothing, delta float64) float64 {
	return value + (target-value)*DampFactor(delta, smoothing)
}
