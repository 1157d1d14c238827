// This tool inspects an Ogg Opus file and reports its stream headers
// and per-packet statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Lakelezz/audiopus"
	"github.com/jonas747/ogg"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("opusinfo", flag.ContinueOnError)

	input := flagSet.String("input", "", "Ogg Opus file to inspect")
	perPacket := flagSet.Bool("packets", false, "print a line per audio packet")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("missing -input flag")
	}

	file, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", *input, err)
	}
	defer file.Close()

	packets := ogg.NewPacketDecoder(ogg.NewDecoder(file))

	headPacket, _, err := packets.Decode()
	if err != nil {
		return fmt.Errorf("error reading OpusHead packet: %w", err)
	}

	head, err := audiopus.UnmarshalOpusHead(headPacket)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Version: %d\n", head.Version)
	fmt.Fprintf(out, "Channels: %d\n", head.Channels)
	fmt.Fprintf(out, "Pre-skip: %d\n", head.PreSkip)
	fmt.Fprintf(out, "Input sample rate: %d Hz\n", head.InputSampleRate)
	fmt.Fprintf(out, "Output gain: %d (Q7.8 dB)\n", head.OutputGain)
	fmt.Fprintf(out, "Mapping family: %d\n", head.MappingFamily)

	tagsPacket, _, err := packets.Decode()
	if err != nil {
		return fmt.Errorf("error reading OpusTags packet: %w", err)
	}

	tags, err := audiopus.UnmarshalOpusTags(tagsPacket)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Vendor: %s\n", tags.Vendor)

	for _, comment := range tags.Comments {
		fmt.Fprintf(out, "Comment: %s\n", comment)
	}

	var totalPackets, totalBytes, totalSamples int

	for {
		data, _, err := packets.Decode()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("error reading audio packet: %w", err)
		}

		if len(data) == 0 {
			continue
		}

		packet, err := audiopus.NewPacket(data)
		if err != nil {
			return err
		}

		bandwidth, err := audiopus.PacketBandwidth(packet)
		if err != nil {
			return fmt.Errorf("error reading packet bandwidth: %w", err)
		}

		channels, err := audiopus.PacketNbChannels(packet)
		if err != nil {
			return fmt.Errorf("error reading packet channels: %w", err)
		}

		frames, err := audiopus.PacketNbFrames(packet)
		if err != nil {
			return fmt.Errorf("error reading packet frames: %w", err)
		}

		samples, err := audiopus.PacketNbSamples(packet, audiopus.Hz48000)
		if err != nil {
			return fmt.Errorf("error reading packet samples: %w", err)
		}

		if *perPacket {
			fmt.Fprintf(out, "packet %d: %d bytes, %s, %d channels, %d frames, %d samples\n",
				totalPackets, packet.Len(), bandwidthName(bandwidth), int(channels), frames, samples)
		}

		totalPackets++
		totalBytes += packet.Len()
		totalSamples += samples
	}

	duration := float64(totalSamples) / 48000

	fmt.Fprintf(out, "Packets: %d\n", totalPackets)
	fmt.Fprintf(out, "Duration: %.3f s\n", duration)

	if duration > 0 {
		fmt.Fprintf(out, "Average bitrate: %.0f bit/s\n", float64(totalBytes)*8/duration)
	}

	return nil
}

func bandwidthName(bandwidth audiopus.Bandwidth) string {
	switch bandwidth {
	case audiopus.Narrowband:
		return "narrowband"
	case audiopus.Mediumband:
		return "mediumband"
	case audiopus.Wideband:
		return "wideband"
	case audiopus.Superwideband:
		return "superwideband"
	case audiopus.Fullband:
		return "fullband"
	default:
		return "auto"
	}
}
