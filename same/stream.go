package same

/*------------------------------------------------------------------
 *
 * Purpose:	Convenience wrappers around Decoder for the two common
 *		shapes of caller (§5): the whole-file case, and a caller
 *		that already has a channel-based audio pipeline. Both are
 *		thin — they still call ProcessChunk synchronously per
 *		item, so the ordering guarantee in §5 holds unchanged.
 *
 *---------------------------------------------------------------*/

// DecodeWAV decodes a complete WAV byte buffer in one call: parses the
// container, resamples to SampleRateCanonical if needed, and feeds the
// whole buffer through a fresh Decoder.
func DecodeWAV(data []byte) ([]Message, error) {
	audio, err := DecodeWAVBytes(data)
	if err != nil {
		return nil, err
	}

	samples := ResampleTo(audio.Samples, audio.SampleRate, SampleRateCanonical)

	d := NewDecoder(SampleRateCanonical)

	return d.ProcessChunk(samples)
}

// DecodeChunks feeds each slice received on chunks through dec in order
// and streams completed messages out on the returned channel, which is
// closed once chunks is closed and fully drained. Any ProcessChunk error
// stops the loop and is sent once on the error channel before both
// channels close.
func DecodeChunks(dec *Decoder, chunks <-chan []float64) (<-chan Message, <-chan error) {
	messages := make(chan Message)
	errs := make(chan error, 1)

	go func() {
		defer close(messages)
		defer close(errs)

		for chunk := range chunks {
			msgs, err := dec.ProcessChunk(chunk)
			if err != nil {
				errs <- err

				return
			}

			for _, m := range msgs {
				messages <- m
			}
		}
	}()

	return messages, errs
}
