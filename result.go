package fcl

import "github.com/go-gl/mathgl/mgl64"

// Result is the outcome of one ContinuousCollide call. Grounded on the
// teacher's B2TOIOutput (State plus a single float) and on
// original_source's ContinuousCollisionResult, extended with the witness
// points and normal a 3-D caller needs to resolve contact.
type Result struct {
	// IsCollide reports whether the two objects touch or overlap at
	// TimeOfContact.
	IsCollide bool

	// TimeOfContact is the parametric time in [0, 1] at which contact was
	// certified, or 1 if the motions never come within tolerance of each
	// other.
	TimeOfContact float64

	// Distance is the narrow-phase distance at TimeOfContact. When
	// IsCollide it is either within the AbsErr/RelErr tolerance or, when
	// the TErr step test stopped the loop, the small remaining gap;
	// otherwise it is the final separating distance.
	Distance float64

	// WitnessA and WitnessB are the closest points on each object, in a
	// shared world frame, at TimeOfContact.
	WitnessA mgl64.Vec3
	WitnessB mgl64.Vec3

	// Normal points from WitnessA towards WitnessB.
	Normal mgl64.Vec3

	// Iterations is the number of outer advancement steps taken.
	Iterations int
}
