package same

import "math"

/*------------------------------------------------------------------
 *
 * Name:	correlatorTemplates
 *
 * Purpose:	Matched-filter FSK correlator (§4.2). Pre-computes four
 *		quadrature templates once per sample rate and produces one
 *		scalar decision metric per input window.
 *
 * Description:	f = (mark_i·x)² + (mark_q·x)² − (space_i·x)² − (space_q·x)²
 *		f > 0 favours MARK, f < 0 favours SPACE.
 *
 *		Double precision throughout — float32 accumulation has
 *		been observed to shift the decision boundary near
 *		marginal SNR (Design Note, §9).
 *
 *---------------------------------------------------------------*/

type correlatorTemplates struct {
	sampleRate int
	window     int
	markI      []float64
	markQ      []float64
	spaceI     []float64
	spaceQ     []float64
}

func newCorrelatorTemplates(sampleRate int) *correlatorTemplates {
	w := CorrelatorWindow(sampleRate)

	t := &correlatorTemplates{
		sampleRate: sampleRate,
		window:     w,
		markI:      make([]float64, w),
		markQ:      make([]float64, w),
		spaceI:     make([]float64, w),
		spaceQ:     make([]float64, w),
	}

	for n := 0; n < w; n++ {
		phase := float64(n) / float64(sampleRate)
		t.markI[n] = math.Cos(2 * math.Pi * MarkFreq * phase)
		t.markQ[n] = math.Sin(2 * math.Pi * MarkFreq * phase)
		t.spaceI[n] = math.Cos(2 * math.Pi * SpaceFreq * phase)
		t.spaceQ[n] = math.Sin(2 * math.Pi * SpaceFreq * phase)
	}

	return t
}

// decide computes the correlator decision metric f for one window of
// samples, which must be exactly t.window samples long.
func (t *correlatorTemplates) decide(window []float64) float64 {
	var markICorr, markQCorr, spaceICorr, spaceQCorr float64

	for n, x := range window {
		markICorr += x * t.markI[n]
		markQCorr += x * t.markQ[n]
		spaceICorr += x * t.spaceI[n]
		spaceQCorr += x * t.spaceQ[n]
	}

	return (markICorr*markICorr + markQCorr*markQCorr) - (spaceICorr*spaceICorr + spaceQCorr*spaceQCorr)
}
