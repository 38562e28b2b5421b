// Command same-encode builds a SAME/EAS header descriptor and renders
// it to a WAV file, optionally playing it on the default audio device.
package main

/*-------------------------------------------------------------------
 *
 * Purpose:	Generate SAME AFSK audio from command line parameters.
 *
 * Description:	Takes the place of gen_packets: instead of building
 *		AX.25 test frames, this builds a SAME header/EOM burst
 *		and writes it out as a .WAV file (or plays it live).
 *
 *-------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kf7qhb/same-endec/same"
)

// stationDefaults holds per-user defaults loaded from a YAML config
// file, so a station doesn't have to be retyped on every invocation.
type stationDefaults struct {
	Station string `yaml:"station"`
	Org     string `yaml:"org"`
}

func loadStationDefaults(path string) (stationDefaults, error) {
	var d stationDefaults

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}

	if err != nil {
		return d, err
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parsing %s: %w", path, err)
	}

	return d, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".same-endec.yaml")
}

func main() {
	var (
		event     = pflag.StringP("event", "e", "", "Three-letter event code, e.g. TOR, SVR, RWT.")
		org       = pflag.StringP("org", "o", "", "Originator code (WXR, PEP, CIV, EAS); inferred from --event if omitted.")
		locations = pflag.StringSliceP("location", "l", nil, "Six-digit FIPS location code; repeat for multiple.")
		duration  = pflag.StringP("duration", "d", "", "Purge time as +HHMM.")
		timestamp = pflag.String("timestamp", "", "Issue time as JJJHHMM; defaults to current UTC time.")
		station   = pflag.StringP("station", "s", "", "Originating station identifier (1-8 chars).")
		noEOM     = pflag.Bool("no-eom", false, "Omit the trailing NNNN end-of-message burst.")
		outFile   = pflag.StringP("out", "f", "", "Output WAV file path; '-' or omitted writes to stdout.")
		play      = pflag.Bool("play", false, "Play the generated audio on the default output device instead of writing a file.")
		config    = pflag.String("config", defaultConfigPath(), "YAML file of station defaults (station, org).")
		verbose   = pflag.BoolP("verbose", "v", false, "Enable debug logging of burst generation.")
		help      = pflag.Bool("help", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: same-encode [options]\n\n")
		fmt.Fprintf(os.Stderr, "Build a SAME/EAS header descriptor and render it as AFSK audio.\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	defaults, err := loadStationDefaults(*config)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	if *station == "" {
		*station = defaults.Station
	}

	if *org == "" {
		*org = defaults.Org
	}

	body, err := same.Build(same.BuildOptions{
		Event:     strings.ToUpper(*event),
		Org:       strings.ToUpper(*org),
		Locations: *locations,
		Duration:  *duration,
		Timestamp: *timestamp,
		Station:   *station,
	})
	if err != nil {
		logger.Fatal("building descriptor", "err", err)
	}

	logger.Info("built descriptor", "body", body)

	gen := same.NewGenerator()
	gen.Logger = logger

	wav, err := gen.Encode(body, !*noEOM)
	if err != nil {
		logger.Fatal("encoding audio", "err", err)
	}

	if *play {
		if err := playWAV(wav, logger); err != nil {
			logger.Fatal("playing audio", "err", err)
		}

		return
	}

	if err := writeOutput(*outFile, wav); err != nil {
		logger.Fatal("writing output", "err", err)
	}
}

func writeOutput(path string, wav []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(wav)
		return err
	}

	return os.WriteFile(path, wav, 0o644)
}

// playWAV decodes the rendered WAV back to samples and streams them to
// the default output device via the portaudio bindings, in place of
// Dire Wolf's direct ALSA/OSS cgo bindings.
func playWAV(wav []byte, logger *log.Logger) error {
	audio, err := same.DecodeWAVBytes(wav)
	if err != nil {
		return err
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	const framesPerBuffer = 1024

	buf := make([]float32, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(audio.SampleRate), framesPerBuffer, buf)
	if err != nil {
		return fmt.Errorf("opening output stream: %w", err)
	}
	defer stream.Close()

	logger.Debug("starting playback", "samples", len(audio.Samples), "sampleRate", audio.SampleRate)

	if err := stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(audio.Samples); offset += framesPerBuffer {
		end := offset + framesPerBuffer
		if end > len(audio.Samples) {
			end = len(audio.Samples)
		}

		n := end - offset
		for i := 0; i < n; i++ {
			buf[i] = float32(audio.Samples[offset+i])
		}

		for i := n; i < framesPerBuffer; i++ {
			buf[i] = 0
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("writing to stream: %w", err)
		}
	}

	return nil
}
