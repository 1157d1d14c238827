// This tool encodes a wav file into an Ogg Opus file.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/Lakelezz/audiopus"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jonas747/ogg"
)

// 20 ms frames, the most common Opus frame duration.
const framesPerSecond = 50

// maxPacketSize is the recommended output buffer size for a single
// encoded packet.
const maxPacketSize = 4000

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("opusenc", flag.ContinueOnError)

	input := flagSet.String("input", "", "wav file to encode")
	output := flagSet.String("output", "output.opus", "Ogg Opus file to write")
	bitrate := flagSet.Int("bitrate", 96000, "target bitrate in bits per second, 0 for automatic")
	application := flagSet.String("application", "audio", "encoder application: voip, audio or lowdelay")
	complexity := flagSet.Int("complexity", 10, "encoder complexity from 0 to 10")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("missing -input flag")
	}

	app, err := parseApplication(*application)
	if err != nil {
		return err
	}

	file, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", *input, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s is not a valid wav file", *input)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", *input, err)
	}

	rate, err := audiopus.NewSampleRate(int(decoder.SampleRate))
	if err != nil {
		return fmt.Errorf("wav sample rate not supported by Opus: %w", err)
	}

	channels, err := audiopus.NewChannels(int(decoder.NumChans))
	if err != nil {
		return fmt.Errorf("wav channel count not supported by Opus: %w", err)
	}

	encoder, err := audiopus.NewEncoder(rate, channels, app)
	if err != nil {
		return fmt.Errorf("error creating encoder: %w", err)
	}
	defer encoder.Close()

	if *bitrate != 0 {
		target, err := audiopus.NewBitrate(*bitrate)
		if err != nil {
			return err
		}

		if err := encoder.SetBitrate(target); err != nil {
			return fmt.Errorf("error setting bitrate: %w", err)
		}
	}

	if err := encoder.SetComplexity(*complexity); err != nil {
		return err
	}

	lookahead, err := encoder.Lookahead()
	if err != nil {
		return fmt.Errorf("error querying lookahead: %w", err)
	}

	pcm := toInt16PCM(buf, int(decoder.BitDepth))

	outFile, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer outFile.Close()

	// Pre-skip and granule positions always count 48 kHz samples, no
	// matter the encoder's rate.
	preSkip := lookahead * 48000 / int(rate)

	head := &audiopus.OpusHead{
		Version:         1,
		Channels:        uint8(channels),
		PreSkip:         uint16(preSkip),
		InputSampleRate: uint32(rate),
		MappingFamily:   0,
	}

	headData, err := head.Marshal()
	if err != nil {
		return err
	}

	tags := &audiopus.OpusTags{
		Vendor:   "audiopus opusenc",
		Comments: []string{"ENCODER=opusenc"},
	}

	tagsData, err := tags.Marshal()
	if err != nil {
		return err
	}

	oggEncoder := ogg.NewEncoder(rand.Uint32(), outFile)

	if err := oggEncoder.EncodeBOS(0, headData); err != nil {
		return fmt.Errorf("error writing OpusHead page: %w", err)
	}

	if err := oggEncoder.Encode(0, tagsData); err != nil {
		return fmt.Errorf("error writing OpusTags page: %w", err)
	}

	frameSize := int(rate) / framesPerSecond * int(channels)
	granulePerFrame := int64(48000 / framesPerSecond)
	granule := int64(preSkip)
	packet := make([]byte, maxPacketSize)

	for start := 0; start < len(pcm); start += frameSize {
		frame := pcm[start:min(start+frameSize, len(pcm))]
		if len(frame) < frameSize {
			// The encoder only accepts full frames; pad the tail with
			// silence.
			frame = append(frame, make([]int16, frameSize-len(frame))...)
		}

		n, err := encoder.Encode(frame, packet)
		if err != nil {
			return fmt.Errorf("error encoding frame at sample %d: %w", start, err)
		}

		granule += granulePerFrame

		if err := oggEncoder.Encode(granule, packet[:n]); err != nil {
			return fmt.Errorf("error writing audio page: %w", err)
		}
	}

	if err := oggEncoder.EncodeEOS(); err != nil {
		return fmt.Errorf("error finishing Ogg stream: %w", err)
	}

	log.Printf("encoded %s into %s (%d Hz, %d channels, pre-skip %d)",
		*input, *output, int(rate), int(channels), preSkip)

	return nil
}

func parseApplication(name string) (audiopus.Application, error) {
	switch name {
	case "voip":
		return audiopus.AppVoIP, nil
	case "audio":
		return audiopus.AppAudio, nil
	case "lowdelay":
		return audiopus.AppLowDelay, nil
	default:
		return 0, fmt.Errorf("unknown application %q", name)
	}
}

// toInt16PCM converts decoded wav samples to the interleaved 16-bit
// representation the Opus encoder expects, rescaling from the source
// bit depth.
func toInt16PCM(buf *audio.IntBuffer, bitDepth int) []int16 {
	pcm := make([]int16, len(buf.Data))

	shift := bitDepth - 16

	for i, v := range buf.Data {
		switch {
		case shift > 0:
			pcm[i] = int16(v >> shift)
		case shift < 0:
			pcm[i] = int16(v << -shift)
		default:
			pcm[i] = int16(v)
		}
	}

	return pcm
}
