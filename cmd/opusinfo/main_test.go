package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lakelezz/audiopus"
	"github.com/jonas747/ogg"
)

// writeOpusFixture writes an Ogg Opus file with the given number of
// 20 ms frames of silence.
func writeOpusFixture(t *testing.T, path string, frames int) {
	t.Helper()

	encoder, err := audiopus.NewEncoder(audiopus.Hz48000, audiopus.Mono, audiopus.AppAudio)
	if err != nil {
		t.Fatalf("error creating encoder: %v", err)
	}
	defer encoder.Close()

	head := &audiopus.OpusHead{
		Version:         1,
		Channels:        1,
		PreSkip:         312,
		InputSampleRate: 48000,
	}

	headData, err := head.Marshal()
	if err != nil {
		t.Fatalf("error marshaling OpusHead: %v", err)
	}

	tags := &audiopus.OpusTags{
		Vendor:   "test vendor",
		Comments: []string{"TITLE=silence"},
	}

	tagsData, err := tags.Marshal()
	if err != nil {
		t.Fatalf("error marshaling OpusTags: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("error creating %s: %v", path, err)
	}
	defer file.Close()

	oggEncoder := ogg.NewEncoder(1, file)

	if err := oggEncoder.EncodeBOS(0, headData); err != nil {
		t.Fatalf("error writing OpusHead page: %v", err)
	}

	if err := oggEncoder.Encode(0, tagsData); err != nil {
		t.Fatalf("error writing OpusTags page: %v", err)
	}

	pcm := make([]int16, 960)
	packet := make([]byte, 4000)
	granule := int64(0)

	for i := 0; i < frames; i++ {
		n, err := encoder.Encode(pcm, packet)
		if err != nil {
			t.Fatalf("error encoding frame %d: %v", i, err)
		}

		granule += 960

		if err := oggEncoder.Encode(granule, packet[:n]); err != nil {
			t.Fatalf("error writing audio page: %v", err)
		}
	}

	if err := oggEncoder.EncodeEOS(); err != nil {
		t.Fatalf("error finishing Ogg stream: %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "silence.opus")

	writeOpusFixture(t, input, 10)

	var out bytes.Buffer

	err := run([]string{"-input", input}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	report := out.String()

	for _, want := range []string{
		"Channels: 1",
		"Pre-skip: 312",
		"Input sample rate: 48000 Hz",
		"Vendor: test vendor",
		"Comment: TITLE=silence",
		"Packets: 10",
		"Duration: 0.200 s",
		"Average bitrate:",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report is missing %q:\n%s", want, report)
		}
	}

	if strings.Contains(report, "packet 0:") {
		t.Fatal("per-packet lines should be off by default")
	}
}

func TestRunPerPacket(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "silence.opus")

	writeOpusFixture(t, input, 3)

	var out bytes.Buffer

	err := run([]string{"-input", input, "-packets"}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	report := out.String()

	for _, want := range []string{"packet 0:", "packet 1:", "packet 2:", "960 samples"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report is missing %q:\n%s", want, report)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	notOgg := filepath.Join(dir, "not.opus")
	if err := os.WriteFile(notOgg, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("error writing fixture: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{}},
		{"missing file", []string{"-input", filepath.Join(dir, "nope.opus")}},
		{"not an ogg stream", []string{"-input", notOgg}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, &out); err == nil {
				t.Fatal("run should have failed")
			}
		})
	}
}
