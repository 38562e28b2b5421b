package same

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWAVBytes_RejectsBadMagic(t *testing.T) {
	_, err := DecodeWAVBytes([]byte("not a wav file at all"))
	require.Error(t, err)

	var invalidErr *InvalidAudioError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestEncodeDecodeWAV_RoundTripsAmplitude(t *testing.T) {
	samples := []float64{0, 0.5, -0.5, 1, -1}

	wav, err := encodeWAV(samples, SampleRateCanonical)
	require.NoError(t, err)

	audio, err := DecodeWAVBytes(wav)
	require.NoError(t, err)
	require.Len(t, audio.Samples, len(samples))

	for i, want := range samples {
		assert.InDelta(t, want, audio.Samples[i], 1.0/32767.0)
	}
}

func TestResampleTo_NoOpWhenRatesMatch(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.3}
	out := ResampleTo(samples, SampleRateCanonical, SampleRateCanonical)
	assert.Equal(t, samples, out)
}

func TestResampleTo_ChangesLengthByRateRatio(t *testing.T) {
	samples := make([]float64, 43750)
	out := ResampleTo(samples, 43750, 22050)
	assert.InDelta(t, 22050, len(out), 2)
}
