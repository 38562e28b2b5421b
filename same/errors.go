package same

import "fmt"

/*------------------------------------------------------------------
 *
 * Purpose:	Error kinds (§7). InvalidDescriptor and InvalidAudio are
 *		the only conditions surfaced to callers as a Go error;
 *		NoMessage is success with an empty result, and LostSync /
 *		BufferOverrun are internal, folded into state transitions
 *		and only ever logged (see logger.go).
 *
 *---------------------------------------------------------------*/

// InvalidDescriptorError reports a grammar or length violation in the
// encode path or in Build (Parse never returns an error).
type InvalidDescriptorError struct {
	Reason string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("invalid SAME descriptor: %s", e.Reason)
}

// InvalidAudioError reports bad WAV magic, zero samples, an
// out-of-range sample rate, or an oversize buffer.
type InvalidAudioError struct {
	Reason string
}

func (e *InvalidAudioError) Error() string {
	return fmt.Sprintf("invalid audio input: %s", e.Reason)
}

func errInvalidDescriptor(format string, args ...any) error {
	return &InvalidDescriptorError{Reason: fmt.Sprintf(format, args...)}
}

func errInvalidAudio(format string, args ...any) error {
	return &InvalidAudioError{Reason: fmt.Sprintf(format, args...)}
}
