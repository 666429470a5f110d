package masses

import "lensing-renderer/internal/mathutil"

// StaticMass is a point mass that attracts photons. Immutable after creation.
type StaticMass struct {
	Pos  mathutil.Vec3
	Mass float32
}

// Field is the ordered set of masses a photon is integrated against.
// An empty field is valid: photons then travel in straight lines.
type Field []StaticMass

// Clone returns an independent copy, safe to share read-only across workers
// while the original keeps being edited.
func (f Field) Clone() Field {
	if len(f) == 0 {
		return nil
	}
	out := make(Field, len(f))
	copy(out, f)
	return out
}
