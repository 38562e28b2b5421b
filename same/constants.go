package same

/*------------------------------------------------------------------
 *
 * Purpose:	Protocol constants for SAME/EAS AFSK, shared by the
 *		generator (§4.1), the correlator (§4.2), and the DLL
 *		(§4.3).
 *
 *		These match the widely-deployed open-source SAME decoder
 *		this package is reference-compatible with; do not "clean
 *		up" the odd fractional frequencies or baud rate, they are
 *		exact per 47 CFR §11.31.
 *
 *---------------------------------------------------------------*/

const (
	// MarkFreq is the tone (Hz) for a binary 1.
	MarkFreq = 2083.0 + 1.0/3.0
	// SpaceFreq is the tone (Hz) for a binary 0.
	SpaceFreq = 1562.5
	// BaudRate is the SAME symbol rate in bits/second.
	BaudRate = 520.0 + 5.0/6.0

	// SampleRateTX is the fixed rate the waveform generator emits at.
	SampleRateTX = 43750
	// SampleRateCanonical is the rate the demodulator operates at
	// internally; anything else is resampled to this before it ever
	// reaches the correlator.
	SampleRateCanonical = 22050

	// PreambleByte is repeated PreambleCount times at the start of
	// every header and EOM burst.
	PreambleByte  byte = 0xAB
	PreambleCount      = 16

	// MarkAmplitude and SpaceAmplitude reproduce the deliberate
	// amplitude asymmetry of the reference encoder (§4.1 step 3a).
	MarkAmplitude  = 0.8
	SpaceAmplitude = 1.0

	// InterBurstSilenceSeconds separates the three repetitions of a
	// header or EOM burst.
	InterBurstSilenceSeconds = 1.0
	// LeadingSilenceSamples settles the channel before the first
	// burst, at SampleRateTX.
	LeadingSilenceSamples = 20000

	// BurstRepeatCount is how many times a header (and, separately,
	// an EOM) is transmitted.
	BurstRepeatCount = 3

	// EOMBody is the ASCII payload of an end-of-message burst.
	EOMBody = "NNNN"

	// HeaderBegin is the byte sequence that opens a SAME header.
	HeaderBegin = "ZCZC"

	// MaxDescriptorLength is the hard ASCII cap on an encoded
	// descriptor (§3).
	MaxDescriptorLength = 268

	// MaxMessageBufferLength is the level-2 anti-runaway cap (§4.4,
	// §7 BufferOverrun).
	MaxMessageBufferLength = 300

	// SUBSAMP is the correlator's mandatory output stride, in input
	// samples; the DLL's phase increment is calibrated to it.
	SUBSAMP = 2

	// IntegratorMax bounds the soft-bit integrator (§4.3).
	IntegratorMax = 10

	// DLLGainUnsync and DLLGainSync are identical today but kept as
	// distinct names because the reference decoder distinguishes the
	// two regimes and a future tuning pass may split them.
	DLLGainUnsync = 0.5
	DLLGainSync   = 0.5

	// DLLMaxInc caps a single DLL phase correction.
	DLLMaxInc = 8192

	// phaseOne is the fixed-point phase accumulator's post-rollover
	// reset value. It is 1, not 0 — reference-compatible quirk that
	// must be preserved bit-for-bit (Design Note, §4.3 step 5).
	phaseOne = 1
)

// PhaseIncrement returns the 16-bit fixed-point phase step for a given
// sample rate, per §4.3: floor(0x10000 * BAUD * SUBSAMP / SR).
func PhaseIncrement(sampleRate int) uint32 {
	return uint32((0x10000 * BaudRate * SUBSAMP) / float64(sampleRate))
}

// CorrelatorWindow returns W, the correlator template length in samples
// at the given sample rate: floor(SR / BAUD).
func CorrelatorWindow(sampleRate int) int {
	return int(float64(sampleRate) / BaudRate)
}
