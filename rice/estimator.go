package rice

import "github.com/mewkiz/pkg/dbg"

// ResetInterval is the epoch length R: the Estimator recomputes k after
// every R samples.
//
// ref: https://ipnpr.jpl.nasa.gov/progress_report/42-159/159E.pdf
const ResetInterval = 256

// Estimator tracks the running mean of emitted ranks and derives the
// Golomb-Rice parameter K so that 2^K approximates that mean. K only
// changes at epoch boundaries, so an encoder and decoder processing
// symbols in lockstep stay synchronized without transmitting K.
type Estimator struct {
	K        uint
	sumDelta uint64
	n        uint64
}

// NewEstimator returns a freshly reset estimator (K = 3).
func NewEstimator() *Estimator {
	e := &Estimator{}
	e.Reset()
	return e
}

// Reset reinitializes K, the running sum, and the sample count. The core
// reinitializes the Estimator at the start of every encode and decode and
// between layers.
func (e *Estimator) Reset() {
	e.K = 3
	e.sumDelta = 0
	e.n = 0
}

// Update folds delta into the running mean and, once ResetInterval samples
// have accumulated, recomputes K as the largest k' with N*2^k' <= sum_delta
// before starting a fresh epoch.
func (e *Estimator) Update(delta uint32) {
	if e.n == ResetInterval {
		k := uint(1)
		for (e.n << k) <= e.sumDelta {
			k++
		}
		e.K = k - 1

		e.n = 0
		e.sumDelta = 0
		dbg.Println("rice: estimator epoch reset, k =", e.K)
	}

	e.sumDelta += uint64(delta)
	e.n++
}
