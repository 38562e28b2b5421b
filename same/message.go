package same

import "strings"

/*------------------------------------------------------------------
 *
 * Purpose:	The layer-2 output object (§6): one per completed header
 *		repetition, plus a distinguished end-of-message record.
 *
 *---------------------------------------------------------------*/

// Message is a single event emitted by the protocol state machine.
// Deduplicating across the three protocol repetitions of a header is
// the caller's responsibility (§4.4): the three copies are
// byte-identical on a clean channel.
type Message struct {
	// DemodName is always "EAS" — kept as a field, not a constant,
	// to match the wire shape in §6 that external callers unmarshal.
	DemodName string
	// HeaderBegin is always "ZCZC" for a header record.
	HeaderBegin string
	// LastMessage is the raw accumulated body after ZCZC, up to and
	// including the terminating dash, e.g.
	// "-WXR-TOR-024031+0030-3171500-PHILLYWX-".
	LastMessage string
	// EndOfMessage is true for the record synthesized when a
	// preceding NNNN burst is recognised.
	EndOfMessage bool

	// rawBytes is the undecorated byte stream this message was built
	// from, kept for Raw().
	rawBytes []byte
}

// Raw renders the message's underlying bytes as display text, replacing
// any non-printable byte with '?' — a cosmetic convenience carried over
// from the original Python reference's extract_messages, which tolerates
// stray bytes in a capture without corrupting the printable parts of the
// display string. It does not affect grammar parsing: Parse works on
// LastMessage, which keeps the bytes as decoded.
func (m Message) Raw() string {
	var b strings.Builder
	b.Grow(len(m.rawBytes))

	for _, c := range m.rawBytes {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}

	return b.String()
}

func newHeaderMessage(raw []byte) Message {
	return Message{
		DemodName:   "EAS",
		HeaderBegin: HeaderBegin,
		LastMessage: string(raw),
		rawBytes:    append([]byte(nil), raw...),
	}
}

func newEOMMessage() Message {
	return Message{
		DemodName:    "EAS",
		HeaderBegin:  HeaderBegin,
		EndOfMessage: true,
	}
}
