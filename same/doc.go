// Package same encodes and decodes Specific Area Message Encoding (SAME)
// headers used by the United States Emergency Alert System.
//
// It provides the AFSK waveform generator that produces a bit-accurate
// baseband transmission (47 CFR §11.31) and the matched-filter FSK
// demodulator, with delay-locked-loop timing recovery and a byte/message
// level state machine, that recovers ZCZC…NNNN frames from arbitrary
// audio, including noisy, resampled, or chunk-streamed input.
//
// Everything outside this package — HTTP transport, FIPS lookups, event
// code tables, CLI bootstrap — is glue that calls into it; same itself
// never reads a file, an environment variable, or a socket.
package same
