package same

import "gonum.org/v1/gonum/dsp/fourier"

/*------------------------------------------------------------------
 *
 * Purpose:	Resample arbitrary-rate PCM to SampleRateCanonical before
 *		it reaches the correlator (§3, §6).
 *
 *		Implemented as FFT-domain band-limited interpolation —
 *		forward real FFT, truncate or zero-pad the spectrum to the
 *		target length, inverse FFT — rather than a hand-rolled FIR
 *		resampler. gonum.org/v1/gonum/dsp/fourier is already the
 *		pack's spectral-analysis library of choice (ka9q_ubersdr
 *		uses it for waterfall/FFT display); reusing it here avoids
 *		writing and tuning a polyphase filter from scratch for a
 *		job a general FFT resample already does well enough for a
 *		narrowband AFSK signal.
 *
 *---------------------------------------------------------------*/

// ResampleTo returns samples resampled from fromRate to toRate. If the
// rates already match, samples is returned unmodified. Resampled output
// is clamped to [-1, 1], the range ProcessChunk accepts: band-limited
// interpolation overshoots full scale slightly next to sharp transitions.
func ResampleTo(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		return samples
	}

	n := len(samples)
	m := int(float64(n) * float64(toRate) / float64(fromRate))

	if m <= 0 {
		return nil
	}

	fwd := fourier.NewFFT(n)
	spectrum := fwd.Coefficients(nil, samples)

	outBins := m/2 + 1
	resized := make([]complex128, outBins)

	copyBins := len(spectrum)
	if copyBins > outBins {
		copyBins = outBins
	}

	copy(resized, spectrum[:copyBins])

	inv := fourier.NewFFT(m)
	out := inv.Sequence(nil, resized)

	scale := 1 / float64(n)
	for i := range out {
		out[i] *= scale
		if out[i] > 1 {
			out[i] = 1
		} else if out[i] < -1 {
			out[i] = -1
		}
	}

	return out
}
