package same

import (
	"math"

	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Name:	Generator
 *
 * Purpose:	AFSK waveform generation for SAME headers (§4.1).
 *
 * Description:	Every bit is one cycle-independent sinusoidal segment —
 *		a MARK tone at 0.8 amplitude for a 1, a SPACE tone at 1.0
 *		amplitude for a 0 — concatenated LSB-first per byte, with
 *		no phase continuity carried from one bit to the next.
 *		This is deliberate (§4.1 Edge cases): a "phase-continuous"
 *		optimization changes the spectrum and breaks bit-compat
 *		with reference decoders, so don't add one.
 *
 *---------------------------------------------------------------*/

// Generator produces the AFSK baseband waveform for a SAME transmission.
// It carries no state between calls to Encode; every invocation is
// independent (Design Note §9: no process-wide singleton, encode is
// stateless).
type Generator struct {
	Logger *log.Logger
}

// NewGenerator returns a Generator with a discard logger.
func NewGenerator() *Generator {
	return &Generator{Logger: discardLogger()}
}

// Encode renders descriptor (and, if includeEOM, a trailing NNNN burst)
// into 16-bit PCM mono WAV bytes at SampleRateTX, per §4.1.
func (g *Generator) Encode(descriptor string, includeEOM bool) ([]byte, error) {
	if len(descriptor) > MaxDescriptorLength {
		return nil, errInvalidDescriptor("descriptor length %d exceeds maximum %d", len(descriptor), MaxDescriptorLength)
	}

	logger := g.logger()

	samples := make([]float64, LeadingSilenceSamples)

	for i := 0; i < BurstRepeatCount; i++ {
		logger.Debug("emitting header burst", "repetition", i+1)
		samples = append(samples, g.burst(descriptor)...)
	}

	if includeEOM {
		for i := 0; i < BurstRepeatCount; i++ {
			logger.Debug("emitting EOM burst", "repetition", i+1)
			samples = append(samples, g.burst(EOMBody)...)
		}
	}

	return encodeWAV(samples, SampleRateTX)
}

// burst emits one preamble + body transmission followed by one second
// of silence: step 3 of §4.1.
func (g *Generator) burst(body string) []float64 {
	out := make([]float64, 0, (PreambleCount+len(body))*8*samplesPerBit()+SampleRateTX)

	for i := 0; i < PreambleCount; i++ {
		out = append(out, g.encodeByte(PreambleByte)...)
	}

	for i := 0; i < len(body); i++ {
		out = append(out, g.encodeByte(body[i])...)
	}

	out = append(out, make([]float64, SampleRateTX)...)

	return out
}

// encodeByte emits one byte as 8 tone-per-bit segments, LSB first.
func (g *Generator) encodeByte(b byte) []float64 {
	n := samplesPerBit()
	out := make([]float64, 0, 8*n)

	for bit := 0; bit < 8; bit++ {
		if (b>>uint(bit))&1 == 1 {
			out = append(out, markBit(n)...)
		} else {
			out = append(out, spaceBit(n)...)
		}
	}

	return out
}

func samplesPerBit() int {
	return int(math.Round(float64(SampleRateTX) / BaudRate))
}

// markBit generates one bit period of MARK tone, starting from local
// phase 0 — never phase-continuous with the previous bit (§4.1).
func markBit(n int) []float64 {
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		t := float64(i) / float64(SampleRateTX)
		out[i] = math.Sin(2*math.Pi*MarkFreq*t) * MarkAmplitude
	}

	return out
}

// spaceBit generates one bit period of SPACE tone.
func spaceBit(n int) []float64 {
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		t := float64(i) / float64(SampleRateTX)
		out[i] = math.Sin(2*math.Pi*SpaceFreq*t) * SpaceAmplitude
	}

	return out
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return discardLogger()
	}

	return g.Logger
}
