package same

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Descriptor builder and parser (§4.5) — the textual SAME
 *		grammar (§3): ZCZC-ORG-EEE-PSSCCC{-PSSCCC}*+HHMM-JJJHHMM-
 *		LLLLLLLL-
 *
 *---------------------------------------------------------------*/

var (
	orgSet          = map[string]bool{"WXR": true, "PEP": true, "CIV": true, "EAS": true}
	eventCodeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)
	locationRegexp  = regexp.MustCompile(`^\d{6}$`)
	durationRegexp  = regexp.MustCompile(`^\+\d{4}$`)
	timestampRegexp = regexp.MustCompile(`^\d{7}$`)
	stationRegexp   = regexp.MustCompile(`^[A-Z0-9/\- ]{1,8}$`)
)

// periodicTestEvents and weatherEvents drive Build's default ORG
// inference (§4.5).
var periodicTestEvents = map[string]bool{
	"EAN": true, "EAT": true, "NIC": true, "NPT": true, "RMT": true, "RWT": true,
}

var weatherEvents = map[string]bool{
	"TOR": true, "SVR": true, "FFW": true, "EVI": true,
}

// BuildOptions are the inputs to Build; Timestamp and Org are optional.
type BuildOptions struct {
	Event     string
	Locations []string
	Duration  string
	Timestamp string // JJJHHMM; derived from current UTC if empty.
	Station   string
	Org       string // inferred from Event if empty.
}

// Build assembles and validates a textual SAME descriptor from its
// components (§4.5), returning an InvalidDescriptorError on any grammar
// violation.
func Build(opts BuildOptions) (string, error) {
	if !eventCodeRegexp.MatchString(opts.Event) {
		return "", errInvalidDescriptor("event code %q must be exactly 3 uppercase letters", opts.Event)
	}

	if len(opts.Locations) == 0 || len(opts.Locations) > 31 {
		return "", errInvalidDescriptor("location count %d must be 1-31", len(opts.Locations))
	}

	for _, loc := range opts.Locations {
		if !locationRegexp.MatchString(loc) {
			return "", errInvalidDescriptor("location code %q must be exactly 6 digits", loc)
		}
	}

	if !durationRegexp.MatchString(opts.Duration) {
		return "", errInvalidDescriptor("duration %q must be in +HHMM format", opts.Duration)
	}

	if hh, _ := strconv.Atoi(opts.Duration[1:3]); hh > 99 { //nolint:errcheck
		return "", errInvalidDescriptor("duration hours %d out of range 00-99", hh)
	}

	if mm, _ := strconv.Atoi(opts.Duration[3:5]); mm > 59 { //nolint:errcheck
		return "", errInvalidDescriptor("duration minutes %d out of range 00-59", mm)
	}

	timestamp := opts.Timestamp
	if timestamp == "" {
		formatted, err := strftime.Format("%j%H%M", time.Now().UTC())
		if err != nil {
			return "", errInvalidDescriptor("deriving timestamp: %v", err)
		}

		timestamp = formatted
	} else if !timestampRegexp.MatchString(timestamp) {
		return "", errInvalidDescriptor("timestamp %q must be 7 digits (JJJHHMM)", timestamp)
	}

	if !stationRegexp.MatchString(opts.Station) {
		return "", errInvalidDescriptor("station %q must be 1-8 characters of [A-Z0-9/- ]", opts.Station)
	}

	org := opts.Org
	if org == "" {
		org = inferOrg(opts.Event)
	} else if !orgSet[org] {
		return "", errInvalidDescriptor("org %q must be one of WXR, PEP, CIV, EAS", org)
	}

	body := "ZCZC-" + org + "-" + opts.Event + "-" + strings.Join(opts.Locations, "-") +
		opts.Duration + "-" + timestamp + "-" + opts.Station + "-"

	if len(body) > MaxDescriptorLength {
		return "", errInvalidDescriptor("descriptor length %d exceeds maximum %d", len(body), MaxDescriptorLength)
	}

	return body, nil
}

func inferOrg(event string) string {
	switch {
	case periodicTestEvents[event]:
		return "PEP"
	case weatherEvents[event]:
		return "WXR"
	default:
		return "CIV"
	}
}

// Descriptor is the parsed form of a SAME body (§4.5). Fields the parser
// could not locate are left as their zero value rather than causing an
// error — "the core reports what it can" (§4.5).
type Descriptor struct {
	Org       string
	Event     string
	Locations []string
	Duration  string
	Timestamp string
	Station   string
}

// Parse splits body on its dash-delimited grammar (§4.5): ORG, EEE, then
// location codes up to the first field from the third on that contains
// a '+' (the duration, glued onto the last location code); the field
// after that is the timestamp, and the last
// non-empty field is the station identifier. It never returns an error
// — partial or ambiguous input yields a Descriptor with some fields
// unset.
func Parse(body string) Descriptor {
	trimmed := strings.Trim(body, "-")
	trimmed = strings.TrimPrefix(trimmed, "ZCZC-")
	trimmed = strings.TrimPrefix(trimmed, "ZCZC")
	trimmed = strings.Trim(trimmed, "-")

	fields := strings.Split(trimmed, "-")

	var d Descriptor

	if len(fields) == 0 || fields[0] == "" {
		return d
	}

	d.Org = fields[0]

	if len(fields) > 1 {
		d.Event = fields[1]
	}

	// The duration is not its own dash-delimited field: it's glued
	// onto the last location code with no separating dash
	// (PSSCCC{-PSSCCC}*+HHMM), so the split point is the first field
	// from index 2 on that *contains* a '+', not one that begins with
	// one.
	durationIdx := -1
	plusAt := -1

	for i := 2; i < len(fields); i++ {
		if idx := strings.IndexByte(fields[i], '+'); idx >= 0 {
			durationIdx = i
			plusAt = idx

			break
		}
	}

	if durationIdx == -1 {
		return d
	}

	d.Locations = append([]string(nil), fields[2:durationIdx]...)

	if plusAt > 0 {
		d.Locations = append(d.Locations, fields[durationIdx][:plusAt])
	}

	d.Duration = fields[durationIdx][plusAt:]

	if durationIdx+1 < len(fields) {
		d.Timestamp = fields[durationIdx+1]
	}

	for i := len(fields) - 1; i > durationIdx+1; i-- {
		if fields[i] != "" {
			d.Station = fields[i]
			break
		}
	}

	return d
}
