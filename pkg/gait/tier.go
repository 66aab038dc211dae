package gait

import (
	"fmt"
	"strings"
)

// QualityTier 动画质量档位
//
// 远处或大量同屏的工人使用低档位，只保留主要动作。
type QualityTier int

const (
	TierHigh QualityTier = iota
	TierMedium
	TierLow
)

func (t QualityTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	}
	return fmt.Sprintf("QualityTier(%d)", int(t))
}

// ParseQualityTier 解析档位名称（不区分大小写）
func ParseQualityTier(name string) (QualityTier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "high":
		return TierHigh, nil
	case "medium":
		return TierMedium, nil
	case "low":
		return TierLow, nil
	}
	return TierHigh, fmt.Errorf("unknown quality tier %q", name)
}

// ForTier returns a copy of the pose with the secondary motion that the tier
// cannot afford zeroed out.
//
//   - High: 完整姿态
//   - Medium: 去掉头部、肩部外展、骨盆前倾和横移
//   - Low: 另外去掉肘部、髋部侧倾、骨盆侧倾和躯干扭转/侧摆
func (p GaitPose) ForTier(tier QualityTier) GaitPose {
	if tier == TierHigh {
		return p
	}

	p.Head = HeadRotation{}
	p.LeftShoulder.Z = 0
	p.RightShoulder.Z = 0
	p.Pelvis.X = 0
	p.LateralOffset = 0

	if tier == TierLow {
		p.LeftElbow = 0
		p.RightElbow = 0
		p.LeftHip.Z = 0
		p.RightHip.Z = 0
		p.Pelvis.Z = 0
		p.Torso.Y = 0
		p.Torso.Z = 0
	}
	return p
}

// ThrottleInterval 每个档位的更新间隔（帧）
//
// 与特效节流一致：高档每帧，中档隔帧，低档每三帧。
func (t QualityTier) ThrottleInterval() int {
	switch t {
	case TierMedium:
		return 2
	case TierLow:
		return 3
	}
	return 1
}
