package same

/*------------------------------------------------------------------
 *
 * Name:	symbolRecovery
 *
 * Purpose:	Integrator + delay-locked-loop timing recovery (§4.3).
 *		Consumes one correlator decision per call and, once per
 *		recovered bit period, emits a hard bit to the byte shift
 *		register which in turn feeds the byte-sync stage (§4.4).
 *
 * Description:	The integrator averages bit decisions over roughly half a
 *		bit; the DLL nudges the sampling phase toward center-bit at
 *		each observed transition, with a larger correction the
 *		further the phase is from the target. This two-stage
 *		recovery tolerates ±1% clock offset and moderate noise
 *		without explicit matched-bit correlation.
 *
 *		The 16-bit phase accumulator and the "reset to 1, not 0"
 *		quirk on rollover are reference-compatible with the
 *		widely-deployed open-source SAME decoder and must be
 *		preserved bit-identically or recovered timing drifts on
 *		long transmissions (Design Note, §9).
 *
 *---------------------------------------------------------------*/

type symbolRecovery struct {
	phaseInc   uint32
	phase      uint32
	integrator int
	dcdShreg   uint32
	syncLocked bool

	// lasts is the 8-bit shift register hard bits are clocked into,
	// LSB-first; a completed byte is delivered via onByte.
	lasts byte

	onByte func(b byte)
}

func newSymbolRecovery(sampleRate int, onByte func(b byte)) *symbolRecovery {
	return &symbolRecovery{
		phaseInc: PhaseIncrement(sampleRate),
		onByte:   onByte,
	}
}

func (s *symbolRecovery) reset() {
	s.phase = 0
	s.integrator = 0
	s.dcdShreg = 0
	s.lasts = 0
	s.syncLocked = false
}

// setSyncLocked lets the byte-sync stage (§4.4) tell the DLL which gain
// regime to use — DLLGainSync once locked, DLLGainUnsync while hunting.
// Both are 0.5 today, but the regimes are kept distinct per the
// reference decoder.
func (s *symbolRecovery) setSyncLocked(locked bool) {
	s.syncLocked = locked
}

// process consumes one correlator decision metric. When a bit period
// completes, the updated 8-bit shift register is delivered to onByte
// before process returns.
func (s *symbolRecovery) process(f float64) {
	s.dcdShreg = (s.dcdShreg << 1) | boolToUint32(f > 0)

	switch {
	case f > 0 && s.integrator < IntegratorMax:
		s.integrator++
	case f < 0 && s.integrator > -IntegratorMax:
		s.integrator--
	}

	gain := DLLGainUnsync
	if s.syncLocked {
		gain = DLLGainSync
	}

	if (s.dcdShreg^(s.dcdShreg>>1))&1 == 1 {
		half := s.phaseInc / 2
		eighth := s.phaseInc / 8

		if s.phase < (0x8000 - eighth) {
			if s.phase > half {
				adj := uint32(float64(s.phase) * gain)
				if adj > DLLMaxInc {
					adj = DLLMaxInc
				}

				s.phase -= adj
			}
		} else if s.phase < (0x10000 - half) {
			adj := uint32(float64(0x10000-s.phase) * gain)
			if adj > DLLMaxInc {
				adj = DLLMaxInc
			}

			s.phase += adj
		}
	}

	s.phase += s.phaseInc

	if s.phase >= 0x10000 {
		s.phase = phaseOne

		s.lasts >>= 1
		if s.integrator >= 0 {
			s.lasts |= 0x80
		}

		s.onByte(s.lasts)
	}
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
