package same

import (
	"io"

	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Injectable structured logging for the conditions §7
 *		classifies as "logged, not an error": LostSync (Debug)
 *		and BufferOverrun (Warn), plus Debug-level sync
 *		acquisition for anyone tailing a live decode.
 *
 *		Dire Wolf's own text_color_set/dw_printf pairing served
 *		this role in the teacher; charmbracelet/log replaces it
 *		with a real leveled logger instead of a bespoke ANSI
 *		color-coding layer.
 *
 *---------------------------------------------------------------*/

// discardLogger is the Decoder/Generator default: quiet unless the
// caller opts in with Decoder.WithLogger or by setting Generator.Logger.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
