package same

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestDescriptor(t *testing.T, descriptor string, eom bool) []byte {
	t.Helper()

	g := NewGenerator()

	wav, err := g.Encode(descriptor, eom)
	require.NoError(t, err)

	return wav
}

func TestSeedScenario1_HeaderAndEOM(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-", true)

	messages, err := DecodeWAV(wav)
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	var sawHeader, sawEOM bool

	for _, m := range messages {
		if strings.Contains(m.LastMessage, "WXR-TOR-024031+0030-3171500-PHILLYWX-") {
			sawHeader = true
		}

		if m.EndOfMessage {
			sawEOM = true
		}
	}

	assert.True(t, sawHeader, "expected a header message, got %+v", messages)
	assert.True(t, sawEOM, "expected an end-of-message record, got %+v", messages)
}

func TestSeedScenario2_MultipleLocations(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-SVR-024031-024033+0100-3191500-PHILLYWX-", false)

	messages, err := DecodeWAV(wav)
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	d := Parse(messages[0].LastMessage)
	assert.Equal(t, []string{"024031", "024033"}, d.Locations)
}

func TestSeedScenario3_SubdivisionDigitPreserved(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-124031+0030-3191900-PHILLYWX-", false)

	messages, err := DecodeWAV(wav)
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	d := Parse(messages[0].LastMessage)
	require.NotEmpty(t, d.Locations)
	assert.Equal(t, byte('1'), d.Locations[0][0])
}

func TestSeedScenario4_BuildInfersOrgAndFormat(t *testing.T) {
	body, err := Build(BuildOptions{
		Event:     "TOR",
		Locations: []string{"024031"},
		Duration:  "+0030",
		Station:   "SCIENCE",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^ZCZC-WXR-TOR-024031\+0030-\d{7}-SCIENCE-$`, body)
}

func TestSeedScenario5_LeadingNoiseDoesNotSpuriouslyEmit(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-", false)
	audio, err := DecodeWAVBytes(wav)
	require.NoError(t, err)

	noise := deterministicNoise(len(audio.Samples) / 10)
	samples := append(noise, audio.Samples...)
	samples = ResampleTo(samples, audio.SampleRate, SampleRateCanonical)

	d := NewDecoder(SampleRateCanonical)
	messages, err := d.ProcessChunk(samples)
	require.NoError(t, err)
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0].LastMessage, "WXR-TOR-024031+0030-3171500-PHILLYWX-")
}

func TestSeedScenario6_ChunkInvarianceVsSingleBuffer(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-", true)
	audio, err := DecodeWAVBytes(wav)
	require.NoError(t, err)

	samples := ResampleTo(audio.Samples, audio.SampleRate, SampleRateCanonical)

	single := NewDecoder(SampleRateCanonical)
	wantMsgs, err := single.ProcessChunk(samples)
	require.NoError(t, err)

	chunked := NewDecoder(SampleRateCanonical)

	const chunkSize = 4096

	var gotMsgs []Message

	for i := 0; i < len(samples); i += chunkSize {
		end := i + chunkSize
		if end > len(samples) {
			end = len(samples)
		}

		msgs, err := chunked.ProcessChunk(samples[i:end])
		require.NoError(t, err)

		gotMsgs = append(gotMsgs, msgs...)
	}

	require.Equal(t, len(wantMsgs), len(gotMsgs))

	for i := range wantMsgs {
		assert.Equal(t, wantMsgs[i].LastMessage, gotMsgs[i].LastMessage)
		assert.Equal(t, wantMsgs[i].EndOfMessage, gotMsgs[i].EndOfMessage)
	}
}

func TestDecoder_ResetReturnsToInitialState(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-", false)
	audio, err := DecodeWAVBytes(wav)
	require.NoError(t, err)

	samples := ResampleTo(audio.Samples, audio.SampleRate, SampleRateCanonical)

	d := NewDecoder(SampleRateCanonical)
	_, err = d.ProcessChunk(samples)
	require.NoError(t, err)

	d.Reset()

	messages, err := d.ProcessChunk(samples)
	require.NoError(t, err)
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0].LastMessage, "WXR-TOR-024031+0030-3171500-PHILLYWX-")
}

func TestDecoder_NoMessageIsNotAnError(t *testing.T) {
	d := NewDecoder(SampleRateCanonical)

	messages, err := d.ProcessChunk(deterministicNoise(SampleRateCanonical))
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestDecoder_RecoversAfterInvalidCharacter(t *testing.T) {
	wav := encodeTestDescriptor(t, "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-", false)
	audio, err := DecodeWAVBytes(wav)
	require.NoError(t, err)

	samples := ResampleTo(audio.Samples, audio.SampleRate, SampleRateCanonical)

	d := NewDecoder(SampleRateCanonical)
	_, err = d.ProcessChunk(deterministicNoise(SampleRateCanonical / 4))
	require.NoError(t, err)

	messages, err := d.ProcessChunk(samples)
	require.NoError(t, err)
	require.NotEmpty(t, messages)
}

// TestDecoder_ResyncsMidMessageAfterInvalidCharacter covers the scenario
// TestDecoder_RecoversAfterInvalidCharacter doesn't: an invalid character
// arriving while messageFSM is already in stateReadingMessage, partway
// through a header, rather than before any signal has locked at all
// (§8's "resync within one preamble detection" invariant).
func TestDecoder_ResyncsMidMessageAfterInvalidCharacter(t *testing.T) {
	g := NewGenerator()

	firstBody := "ZCZC-EAS-RWT-012345+0015-1231200-NWS/TEST-"
	partial := firstBody[:20]

	var samples []float64
	samples = append(samples, make([]float64, LeadingSilenceSamples)...)

	for i := 0; i < PreambleCount; i++ {
		samples = append(samples, g.encodeByte(PreambleByte)...)
	}

	for i := 0; i < len(partial); i++ {
		samples = append(samples, g.encodeByte(partial[i])...)
	}

	// A byte outside easAllowed's range (same/layer1.go): forces
	// byteSync to drop lock mid-message, while messageFSM still holds
	// the partial "-EAS-RWT-012345+" buffer (everything after "ZCZC")
	// from the burst above.
	samples = append(samples, g.encodeByte(0x01)...)

	second := "ZCZC-WXR-TOR-024031+0030-3171500-PHILLYWX-"
	samples = append(samples, g.burst(second)...)

	resampled := ResampleTo(samples, SampleRateTX, SampleRateCanonical)

	d := NewDecoder(SampleRateCanonical)

	messages, err := d.ProcessChunk(resampled)
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	for _, m := range messages {
		if m.EndOfMessage {
			continue
		}

		assert.Equal(t, second[len(HeaderBegin):], m.LastMessage)
		assert.NotContains(t, m.LastMessage, "RWT-012345")
	}
}

// deterministicNoise returns a reproducible pseudo-random float64 slice
// in [-1, 1], avoiding a dependency on math/rand's global state so tests
// stay deterministic across runs.
func deterministicNoise(n int) []float64 {
	out := make([]float64, n)
	state := uint32(0x2545F491)

	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		out[i] = (float64(state%20001) / 10000.0) - 1.0
	}

	return out
}
