package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// EulerAngles are fixed-axis roll, pitch and yaw in radians, applied roll first, as URDF
// "rpy" attributes specify them.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles builds EulerAngles from an [roll, pitch, yaw] slice.
func NewEulerAngles(rpy []float64) EulerAngles {
	var ea EulerAngles
	if len(rpy) > 0 {
		ea.Roll = rpy[0]
	}
	if len(rpy) > 1 {
		ea.Pitch = rpy[1]
	}
	if len(rpy) > 2 {
		ea.Yaw = rpy[2]
	}
	return ea
}

// RotationMatrix returns the rotation in the description's own (z-up) frame:
// Rz(yaw) * Ry(pitch) * Rx(roll).
func (ea EulerAngles) RotationMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(ea.Yaw).
		Mul4(mgl64.HomogRotate3DY(ea.Pitch)).
		Mul4(mgl64.HomogRotate3DX(ea.Roll))
}

// IsZero reports whether all three angles are zero.
func (ea EulerAngles) IsZero() bool {
	return ea.Roll == 0 && ea.Pitch == 0 && ea.Yaw == 0
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("%.4g %.4g %.4g", ea.Roll, ea.Pitch, ea.Yaw)
}
