// This tool decodes an Ogg Opus file into a wav or aiff file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Lakelezz/audiopus"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jonas747/ogg"
)

// Opus always decodes Ogg streams at 48 kHz; the identification
// header's input rate is informational only.
const outputSampleRate = 48000

// maxFrameSize is the sample count per channel of the longest Opus
// frame (120 ms at 48 kHz).
const maxFrameSize = 5760

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("opusdec", flag.ContinueOnError)

	input := flagSet.String("input", "", "Ogg Opus file to decode")
	output := flagSet.String("output", "output.wav", "audio file to write")
	format := flagSet.String("format", "wav", "output container: wav or aiff")
	gain := flagSet.Int("gain", 0, "decoder gain adjustment in Q8 dB units")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("missing -input flag")
	}

	if *format != "wav" && *format != "aiff" {
		return fmt.Errorf("unknown output format %q", *format)
	}

	file, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", *input, err)
	}
	defer file.Close()

	head, pcm, err := decodeStream(file, *gain)
	if err != nil {
		return err
	}

	outFile, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer outFile.Close()

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(head.Channels),
			SampleRate:  outputSampleRate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, len(pcm)),
	}
	for i, v := range pcm {
		intBuf.Data[i] = int(v)
	}

	if *format == "aiff" {
		encoder := aiff.NewEncoder(outFile, outputSampleRate, 16, int(head.Channels))
		if err := encoder.Write(intBuf); err != nil {
			return fmt.Errorf("error writing aiff data: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("error finishing %s: %w", *output, err)
		}
	} else {
		encoder := wav.NewEncoder(outFile, outputSampleRate, 16, int(head.Channels), 1)
		if err := encoder.Write(intBuf); err != nil {
			return fmt.Errorf("error writing wav data: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("error finishing %s: %w", *output, err)
		}
	}

	log.Printf("decoded %s into %s (%d samples, %d channels)",
		*input, *output, len(pcm)/int(head.Channels), head.Channels)

	return nil
}

// decodeStream reads an Ogg Opus stream and returns its identification
// header along with the decoded, pre-skip trimmed, interleaved PCM.
func decodeStream(r io.Reader, gain int) (*audiopus.OpusHead, []int16, error) {
	packets := ogg.NewPacketDecoder(ogg.NewDecoder(r))

	headPacket, _, err := packets.Decode()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading OpusHead packet: %w", err)
	}

	head, err := audiopus.UnmarshalOpusHead(headPacket)
	if err != nil {
		return nil, nil, err
	}

	tagsPacket, _, err := packets.Decode()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading OpusTags packet: %w", err)
	}

	if _, err := audiopus.UnmarshalOpusTags(tagsPacket); err != nil {
		return nil, nil, err
	}

	channels, err := audiopus.NewChannels(int(head.Channels))
	if err != nil {
		return nil, nil, err
	}

	decoder, err := audiopus.NewDecoder(audiopus.Hz48000, channels)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating decoder: %w", err)
	}
	defer decoder.Close()

	if gain != 0 {
		if err := decoder.SetGain(gain); err != nil {
			return nil, nil, fmt.Errorf("error setting gain: %w", err)
		}
	}

	frame := make([]int16, maxFrameSize*int(channels))

	signals, err := audiopus.NewMutSignals(frame)
	if err != nil {
		return nil, nil, err
	}

	var pcm []int16

	for {
		data, _, err := packets.Decode()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("error reading audio packet: %w", err)
		}

		if len(data) == 0 {
			continue
		}

		packet, err := audiopus.NewPacket(data)
		if err != nil {
			return nil, nil, err
		}

		n, err := decoder.Decode(&packet, signals, false)
		if err != nil {
			return nil, nil, fmt.Errorf("error decoding packet: %w", err)
		}

		pcm = append(pcm, frame[:n*int(channels)]...)
	}

	skip := int(head.PreSkip) * int(channels)
	if skip > len(pcm) {
		skip = len(pcm)
	}

	return head, pcm[skip:], nil
}
