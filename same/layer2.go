package same

import (
	"bytes"

	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Name:	messageFSM
 *
 * Purpose:	Layer-2 message state machine (§4.4): detects ZCZC,
 *		accumulates header characters across the three protocol
 *		repetitions, and recognises NNNN end-of-message.
 *
 * Description:	Three states, starting in idle:
 *
 *		idle -> headerSearch on the first character.
 *		headerSearch accumulates a 4-byte sliding window; ZCZC
 *		moves to readingMessage, NNNN (after a header was already
 *		emitted) marks end-of-message and returns to idle.
 *		readingMessage appends to a message buffer and emits a
 *		completed header once the buffer has at least 6
 *		dash-separated fields whose final field (before the
 *		trailing dash) is at most 8 characters — a completeness
 *		heuristic carried over unhardened from the reference
 *		decoder (Design Note, §9 Open Question): real captures
 *		include junk between repetitions, and a full grammar check
 *		here would reject legitimate slightly-malformed bursts.
 *
 *---------------------------------------------------------------*/

type fsmState int

const (
	stateIdle fsmState = iota
	stateHeaderSearch
	stateReadingMessage
)

type messageFSM struct {
	state      fsmState
	window     []byte
	buf        []byte
	headerSeen bool
	onMessage  func(Message)
	logger     *log.Logger
}

func newMessageFSM(onMessage func(Message)) *messageFSM {
	return &messageFSM{onMessage: onMessage, logger: discardLogger()}
}

// setLogger attaches a logger for BufferOverrun diagnostics (§7). Called
// by Decoder.WithLogger so the FSM's Warn logging tracks whatever
// logger the caller most recently injected.
func (m *messageFSM) setLogger(logger *log.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

func (m *messageFSM) reset() {
	m.state = stateIdle
	m.window = nil
	m.buf = nil
	m.headerSeen = false
}

func (m *messageFSM) onChar(c byte) {
	switch m.state {
	case stateIdle:
		m.window = []byte{c}
		m.state = stateHeaderSearch
	case stateHeaderSearch:
		m.onHeaderSearchChar(c)
	case stateReadingMessage:
		m.onReadingMessageChar(c)
	}
}

func (m *messageFSM) onHeaderSearchChar(c byte) {
	m.window = append(m.window, c)
	if len(m.window) > 4 {
		m.window = m.window[len(m.window)-4:]
	}

	if len(m.window) < 4 {
		return
	}

	switch string(m.window) {
	case HeaderBegin:
		m.state = stateReadingMessage
		m.buf = nil
	case EOMBody:
		if m.headerSeen {
			m.onMessage(newEOMMessage())
			m.headerSeen = false
		}

		m.state = stateIdle
		m.window = nil
	}
}

func (m *messageFSM) onReadingMessageChar(c byte) {
	m.buf = append(m.buf, c)

	if bytes.Contains(m.buf, []byte(EOMBody)) {
		if m.headerSeen {
			m.onMessage(newEOMMessage())
		}

		m.state = stateIdle
		m.window = nil
		m.buf = nil
		m.headerSeen = false

		return
	}

	if m.hasCompleteHeader() {
		m.onMessage(newHeaderMessage(m.buf))
		m.headerSeen = true
		m.buf = nil

		return
	}

	if len(m.buf) >= MaxMessageBufferLength {
		// BufferOverrun (§7): force-emit what we have and reset,
		// rather than growing the buffer without bound.
		m.logger.Warn("message buffer overrun, forcing emit", "length", len(m.buf))
		m.onMessage(newHeaderMessage(m.buf))
		m.headerSeen = true
		m.buf = nil
	}
}

// hasCompleteHeader implements the "6-dash/≤8-char tail" completeness
// heuristic (§4.4): at least 6 dash-separated fields, and the field
// before the final trailing dash is at most 8 characters long.
func (m *messageFSM) hasCompleteHeader() bool {
	if len(m.buf) == 0 || m.buf[len(m.buf)-1] != '-' {
		return false
	}

	fields := bytes.Split(bytes.TrimSuffix(m.buf, []byte("-")), []byte("-"))
	if len(fields) < 6 {
		return false
	}

	last := fields[len(fields)-1]

	return len(last) <= 8
}
