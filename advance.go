package fcl

import "github.com/jiapei100/fcl/log"

var advanceLog = log.New("fcl.advance")

// runAdvance is the C6 outer conservative-advancement loop, carried
// through from original_source/src/ccd/conservative_advancement.cpp's
// do/while shape unchanged: at each step, compute the current distance
// lower bound, certify collision or exhaustion of the interval, bound
// how fast that distance could possibly shrink, and take the largest
// step that bound still certifies as safe. Also grounded on the
// teacher's B2TimeOfImpact outer loop, the same algorithm family
// (separating-axis conservative advancement) already expressed in Go,
// just for a different bounding-volume/motion combination.
func runAdvance(n travNode, req Request) (Result, error) {
	t := 0.0
	n.integrate(t)

	// tol combines AbsErr with RelErr scaled against the separation at
	// t=0, the only point both sides are guaranteed to still be apart.
	// Matches how the teacher's B2Distance input treats its tolerance
	// pair as a single effective threshold fixed for the whole query.
	tol := req.AbsErr
	{
		d0 := n.distance()
		tol += req.RelErr * d0.WitnessA.Sub(d0.WitnessB).Len()
	}

	for iter := 0; ; iter++ {
		if iter >= req.MaxIterations {
			advanceLog.Warningf("exceeded %d iterations at t=%.6g, reporting non-convergence", req.MaxIterations, t)
			return Result{}, newError(ErrNumericNonConvergence, "exceeded %d iterations at t=%.6g", req.MaxIterations, t)
		}

		res := n.distance()

		if res.Distance <= tol {
			return Result{
				IsCollide:     true,
				TimeOfContact: t,
				Distance:      res.Distance,
				WitnessA:      res.WitnessA,
				WitnessB:      res.WitnessB,
				Normal:        res.Normal,
				Iterations:    iter,
			}, nil
		}

		if t >= 1 {
			return Result{
				IsCollide:     false,
				TimeOfContact: 1,
				Distance:      res.Distance,
				WitnessA:      res.WitnessA,
				WitnessB:      res.WitnessB,
				Normal:        res.Normal,
				Iterations:    iter,
			}, nil
		}

		bound := n.motionBound(res)
		if bound <= 0 {
			return Result{}, newError(ErrDegenerateMotion, "zero motion bound at t=%.6g with distance %.6g", t, res.Distance)
		}

		remaining := 1 - t
		rate := bound / remaining
		step := res.Distance / rate

		// Convergence test: once the next step itself would advance toc
		// by no more than TErr, contact is imminent within tolerance;
		// stop and report a hit at the current toc rather than spend
		// more iterations chasing a step too small to matter.
		if step <= req.TErr {
			return Result{
				IsCollide:     true,
				TimeOfContact: t,
				Distance:      res.Distance,
				WitnessA:      res.WitnessA,
				WitnessB:      res.WitnessB,
				Normal:        res.Normal,
				Iterations:    iter,
			}, nil
		}

		t += step
		if t > 1 {
			t = 1
		}
		n.integrate(t)
	}
}
