package gait

import (
	"math"
	"testing"
)

func fullRefs() PoseRefs {
	return PoseRefs{
		LeftLeg:      &Transform{},
		RightLeg:     &Transform{},
		LeftArm:      &Transform{},
		RightArm:     &Transform{},
		Torso:        &Transform{},
		Hips:         &Transform{},
		Head:         &Transform{},
		LeftShin:     &Transform{},
		RightShin:    &Transform{},
		LeftForearm:  &Transform{},
		RightForearm: &Transform{},
	}
}

// TestApplyGaitPose_Convergence 静止目标下单调逼近、不越过，最终收敛
func TestApplyGaitPose_Convergence(t *testing.T) {
	pose := CalculateGaitPose(0.25, Walk(), 1)
	refs := fullRefs()
	const delta = 1.0 / 60

	target := pose.RightHip.X
	prev := math.Abs(target - refs.RightLeg.Rotation.X)

	for i := 0; i < 100; i++ {
		ApplyGaitPose(pose, refs, delta, DefaultSmoothing)
		cur := math.Abs(target - refs.RightLeg.Rotation.X)
		if cur >= prev {
			t.Fatalf("step %d: distance %v did not shrink from %v", i, cur, prev)
		}
		if refs.RightLeg.Rotation.X > target {
			t.Fatalf("step %d: overshoot %v > %v", i, refs.RightLeg.Rotation.X, target)
		}
		prev = cur
	}

	for i := 0; i < 2000; i++ {
		ApplyGaitPose(pose, refs, delta, DefaultSmoothing)
	}
	if d := math.Abs(target - refs.RightLeg.Rotation.X); d > 1e-12 {
		t.Errorf("did not converge: distance %v", d)
	}
	if d := math.Abs(pose.VerticalOffset - refs.Hips.Position.Y); d > 1e-12 {
		t.Errorf("hips vertical offset did not converge: distance %v", d)
	}
}

// TestApplyGaitPose_FramerateIndependent 30fps 与 60fps 的结果一致
func TestApplyGaitPose_FramerateIndependent(t *testing.T) {
	pose := CalculateGaitPose(0.4, Run(), 1)

	a := fullRefs()
	ApplyGaitPose(pose, a, 1.0/30, DefaultSmoothing)

	b := fullRefs()
	ApplyGaitPose(pose, b, 1.0/60, DefaultSmoothing)
	ApplyGaitPose(pose, b, 1.0/60, DefaultSmoothing)

	if math.Abs(a.LeftLeg.Rotation.X-b.LeftLeg.Rotation.X) > 1e-12 {
		t.Errorf("30fps %v != 2x60fps %v", a.LeftLeg.Rotation.X, b.LeftLeg.Rotation.X)
	}
	if math.Abs(a.Torso.Rotation.Z-b.Torso.Rotation.Z) > 1e-12 {
		t.Errorf("torso sway 30fps %v != 2x60fps %v", a.Torso.Rotation.Z, b.Torso.Rotation.Z)
	}
}

// TestApplyGaitPose_FastAxes 躯干侧摆和髋部横移响应更快
func TestApplyGaitPose_FastAxes(t *testing.T) {
	pose := GaitPose{
		Torso:         Vec3{X: 1, Z: 1},
		Pelvis:        Vec3{Y: 1},
		LateralOffset: 1,
	}
	refs := fullRefs()
	ApplyGaitPose(pose, refs, 1.0/60, DefaultSmoothing)

	if refs.Torso.Rotation.Z <= refs.Torso.Rotation.X {
		t.Errorf("torso sway %v should move faster than lean %v", refs.Torso.Rotation.Z, refs.Torso.Rotation.X)
	}
	if refs.Hips.Position.X <= refs.Hips.Rotation.Y {
		t.Errorf("hips lateral %v should move faster than yaw %v", refs.Hips.Position.X, refs.Hips.Rotation.Y)
	}
}

func TestApplyGaitPose_NilHandlesSkipped(t *testing.T) {
	pose := CalculateGaitPose(0.25, Walk(), 1)
	refs := PoseRefs{RightLeg: &Transform{}}

	ApplyGaitPose(pose, refs, 1.0/60, DefaultSmoothing)
	if refs.RightLeg.Rotation.X == 0 {
		t.Error("present handle was not updated")
	}

	// 完全为空也不应 panic
	ApplyGaitPose(pose, PoseRefs{}, 1.0/60, DefaultSmoothing)
}

func TestApplyGaitPose_EdgeDeltas(t *testing.T) {
	pose := CalculateGaitPose(0.25, Walk(), 1)

	refs := fullRefs()
	ApplyGaitPose(pose, refs, 0, DefaultSmoothing)
	ApplyGaitPose(pose, refs, -1, DefaultSmoothing)
	if *refs.RightLeg != (Transform{}) {
		t.Errorf("non-positive delta mutated handle: %+v", *refs.RightLeg)
	}

	ApplyGaitPose(pose, refs, 1.0/60, 0)
	if refs.RightLeg.Rotation.X != pose.RightHip.X {
		t.Errorf("zero smoothing should snap: %v vs %v", refs.RightLeg.Rotation.X, pose.RightHip.X)
	}
	if refs.LeftForearm.Rotation.X != -pose.LeftElbow {
		t.Errorf("forearm should snap to -elbow: %v vs %v", refs.LeftForearm.Rotation.X, -pose.LeftElbow)
	}
}
