// Command same-decode reads audio and prints one JSON line per SAME
// message it recovers.
package main

/*-------------------------------------------------------------------
 *
 * Purpose:	Test fixture / CLI front end for the SAME decoder.
 *
 * Inputs:	Takes audio from a .WAV file, or raw float64 samples from
 *		stdin when --raw-rate is given.
 *
 * Description:	Modeled on Dire Wolf's atest: decode a fixed file under
 *		controlled, reproducible conditions instead of wiring up
 *		a live audio device.
 *
 *-------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/kf7qhb/same-endec/same"
)

const chunkSamples = 4096

func main() {
	var (
		rawRate   = pflag.Int("raw-rate", 0, "Treat stdin as little-endian float64 PCM at this sample rate instead of reading a WAV file.")
		verbose   = pflag.BoolP("verbose", "v", false, "Enable debug logging of lock/unlock transitions.")
		help      = pflag.Bool("help", false, "Display help text.")
		logFormat = pflag.String("log-format", "text", "Log output format: text or json.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: same-decode [options] [file.wav]\n\n")
		fmt.Fprintf(os.Stderr, "Decode a SAME/EAS header burst from a WAV file (or stdin if no file\nis given) and print one JSON object per recovered message.\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if *logFormat == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	var in io.Reader = os.Stdin

	if args := pflag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			logger.Fatal("opening input", "file", args[0], "err", err)
		}
		defer f.Close()

		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		logger.Fatal("reading input", "err", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	enc := json.NewEncoder(out)

	if *rawRate > 0 {
		if err := decodeRaw(data, *rawRate, logger, enc); err != nil {
			logger.Fatal("decoding raw samples", "err", err)
		}

		return
	}

	if err := decodeWAV(data, logger, enc); err != nil {
		logger.Fatal("decoding WAV", "err", err)
	}
}

func decodeWAV(data []byte, logger *log.Logger, enc *json.Encoder) error {
	audio, err := same.DecodeWAVBytes(data)
	if err != nil {
		return err
	}

	samples := same.ResampleTo(audio.Samples, audio.SampleRate, same.SampleRateCanonical)

	return streamSamples(samples, logger, enc)
}

func decodeRaw(data []byte, rate int, logger *log.Logger, enc *json.Encoder) error {
	if len(data)%8 != 0 {
		return fmt.Errorf("raw sample stream length %d is not a multiple of 8 bytes", len(data))
	}

	samples := make([]float64, len(data)/8)

	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	samples = same.ResampleTo(samples, rate, same.SampleRateCanonical)

	return streamSamples(samples, logger, enc)
}

func streamSamples(samples []float64, logger *log.Logger, enc *json.Encoder) error {
	dec := same.NewDecoder(same.SampleRateCanonical).WithLogger(logger)

	for i := 0; i < len(samples); i += chunkSamples {
		end := i + chunkSamples
		if end > len(samples) {
			end = len(samples)
		}

		messages, err := dec.ProcessChunk(samples[i:end])
		if err != nil {
			return err
		}

		for _, m := range messages {
			if err := enc.Encode(messageJSONFrom(m)); err != nil {
				return err
			}
		}
	}

	return nil
}

type messageJSON struct {
	Raw          string `json:"raw"`
	DemodName    string `json:"demod_name"`
	HeaderBegin  string `json:"header_begin"`
	LastMessage  string `json:"last_message"`
	EndOfMessage bool   `json:"end_of_message"`
}

func messageJSONFrom(m same.Message) messageJSON {
	return messageJSON{
		Raw:          m.Raw(),
		DemodName:    m.DemodName,
		HeaderBegin:  m.HeaderBegin,
		LastMessage:  m.LastMessage,
		EndOfMessage: m.EndOfMessage,
	}
}
