package fcl

import (
	"math"

	"github.com/jiapei100/fcl/narrowphase"
)

// Request configures one ContinuousCollide call: which narrow-phase
// solver the dispatcher's handlers use at BVH leaves, how many outer
// conservative-advancement iterations to allow, and the tolerances that
// decide when the separation or the next advancement step is small
// enough to report contact. Grounded on the teacher's B2TOIInput (a small
// value bundle built with a Make... constructor) and on
// original_source's ContinuousCollisionRequest.
type Request struct {
	Solver narrowphase.Solver

	// MaxIterations bounds the outer advancement loop; exceeding it
	// without convergence is reported as ErrNumericNonConvergence.
	MaxIterations int

	// TErr is the time-domain convergence tolerance: the loop stops and
	// reports a hit once the next conservative-advancement step itself
	// would advance toc by no more than TErr.
	TErr float64

	// AbsErr and RelErr bound acceptable error on the reported distance
	// at the point of contact, the same pair the teacher's B2Distance
	// input accepts.
	AbsErr float64
	RelErr float64
}

// DefaultRequest returns a Request with the tolerances this package's
// tests are written against. Each outer iteration either advances toc by
// at least TErr or breaks on the convergence test, so iterations are
// bounded by ceil(1/TErr); MaxIterations is sized to that bound plus a
// small margin rather than an arbitrary round number, so a slow but
// legitimate convergence is never mistaken for ErrNumericNonConvergence.
func DefaultRequest(solver narrowphase.Solver) Request {
	const terr = 1e-6
	return Request{
		Solver:        solver,
		MaxIterations: MaxIterationsFor(terr),
		TErr:          terr,
		AbsErr:        1e-6,
		RelErr:        1e-6,
	}
}

// MaxIterationsFor returns ceil(1/terr) plus a small margin, the
// iteration bound the outer advancement loop guarantees per its
// termination argument: every iteration that doesn't return advances toc
// by more than terr. Callers building a Request with a custom TErr
// should size MaxIterations from this rather than an arbitrary constant.
func MaxIterationsFor(terr float64) int {
	return int(math.Ceil(1/terr)) + 16
}
