package same

import (
	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Name:	Decoder
 *
 * Purpose:	Streaming SAME/EAS demodulator (§2-§5): ties the matched
 *		filter, the DLL, and the two protocol-FSM layers together
 *		behind ProcessChunk/Reset.
 *
 * Description:	All state — DLL phase/integrator, bit/byte shift
 *		registers, sync-locked flag, message buffer, and a
 *		one-correlation-window audio tail — is owned exclusively by
 *		one Decoder instance; there is no global or process-wide
 *		state (§3, §5, §9). A Decoder may be migrated between
 *		threads but must not be used from two threads concurrently.
 *
 *---------------------------------------------------------------*/

// Decoder recovers SAME messages from a stream of audio chunks at a
// fixed target sample rate.
type Decoder struct {
	sampleRate int
	templates  *correlatorTemplates
	recovery   *symbolRecovery
	sync       *byteSync
	fsm        *messageFSM

	logger *log.Logger

	// tail carries forward samples that didn't fill a complete
	// correlation window, so chunk boundaries never lose samples
	// (§3 Demodulator State, §8 chunk-invariance).
	tail []float64

	pending []Message
}

// NewDecoder returns a Decoder targeting sampleRate (typically
// SampleRateCanonical). Callers feeding non-canonical audio should
// resample with ResampleTo first.
func NewDecoder(sampleRate int) *Decoder {
	d := &Decoder{
		sampleRate: sampleRate,
		templates:  newCorrelatorTemplates(sampleRate),
		logger:     discardLogger(),
	}

	d.fsm = newMessageFSM(func(msg Message) { d.pending = append(d.pending, msg) })
	d.sync = newByteSync(d.fsm.onChar, d.onLockChanged)
	d.recovery = newSymbolRecovery(sampleRate, d.sync.onByte)

	return d
}

// WithLogger attaches a logger for LostSync/BufferOverrun/resync
// diagnostics (§7) and returns the Decoder for chaining.
func (d *Decoder) WithLogger(logger *log.Logger) *Decoder {
	if logger != nil {
		d.logger = logger
		d.fsm.setLogger(logger)
	}

	return d
}

func (d *Decoder) onLockChanged(locked bool) {
	d.recovery.setSyncLocked(locked)

	if locked {
		d.logger.Debug("preamble sync acquired")

		return
	}

	// An invalid character dropped byte sync (§4.4 level 1). Layer 2's
	// state and partial message buffer are only ever valid in the
	// context of the repetition that just got corrupted, so this must
	// reach the equivalent of a fresh reset() before the next preamble
	// locks (§8): otherwise the next burst's "ZCZC-..." is appended as
	// ordinary message content instead of starting a clean header.
	// Whether a header was already emitted is kept: sync always drops in
	// the silence between bursts, and a following NNNN burst still has
	// to produce its end-of-message record.
	headerSeen := d.fsm.headerSeen
	d.fsm.reset()
	d.fsm.headerSeen = headerSeen
	d.logger.Debug("lost sync, resuming preamble hunt")
}

// Reset returns the Decoder to its initial state, as if newly
// constructed, before starting an independent stream (§3 Lifecycle).
func (d *Decoder) Reset() {
	d.recovery.reset()
	d.sync.reset()
	d.fsm.reset()
	d.tail = nil
	d.pending = nil
}

// ProcessChunk consumes samples (mono float64 in [-1, 1] at the
// Decoder's sample rate) and returns, in the order their terminating
// condition was detected, every Message completed as a result (§5, §6).
// An empty result with a nil error is success with no message yet
// (§7 NoMessage) — not an error.
func (d *Decoder) ProcessChunk(samples []float64) ([]Message, error) {
	if len(samples) > 0 && (samplesExceedRange(samples)) {
		return nil, errInvalidAudio("sample value out of [-1, 1] range")
	}

	buf := append(d.tail, samples...)

	w := d.templates.window
	i := 0

	for i+w <= len(buf) {
		f := d.templates.decide(buf[i : i+w])
		d.recovery.process(f)
		i += SUBSAMP
	}

	d.tail = append([]float64(nil), buf[i:]...)

	out := d.pending
	d.pending = nil

	return out, nil
}

func samplesExceedRange(samples []float64) bool {
	for _, s := range samples {
		if s < -1.0001 || s > 1.0001 {
			return true
		}
	}

	return false
}
