package audiopus

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpusHeadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		head OpusHead
	}{
		{
			"stereo family 0",
			OpusHead{
				Version:         1,
				Channels:        2,
				PreSkip:         312,
				InputSampleRate: 44100,
				OutputGain:      0,
				MappingFamily:   0,
			},
		},
		{
			"mono with gain",
			OpusHead{
				Version:         1,
				Channels:        1,
				PreSkip:         0,
				InputSampleRate: 48000,
				OutputGain:      -256,
				MappingFamily:   0,
			},
		},
		{
			"surround family 1",
			OpusHead{
				Version:         1,
				Channels:        6,
				PreSkip:         312,
				InputSampleRate: 48000,
				MappingFamily:   1,
				StreamCount:     4,
				CoupledCount:    2,
				Mapping:         []uint8{0, 4, 1, 2, 3, 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.head.Marshal()
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			got, err := UnmarshalOpusHead(data)
			if err != nil {
				t.Fatalf("UnmarshalOpusHead failed: %v", err)
			}

			if diff := cmp.Diff(&tt.head, got); diff != "" {
				t.Fatalf("header mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpusHeadMarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		head OpusHead
	}{
		{"zero channels", OpusHead{Version: 1, Channels: 0}},
		{"family 0 surround", OpusHead{Version: 1, Channels: 3, MappingFamily: 0}},
		{
			"mapping table size mismatch",
			OpusHead{Version: 1, Channels: 4, MappingFamily: 1, Mapping: []uint8{0, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.head.Marshal(); !errors.Is(err, ErrBadOpusHead) {
				t.Fatalf("Marshal error=%v, want ErrBadOpusHead", err)
			}
		})
	}
}

func TestUnmarshalOpusHeadErrors(t *testing.T) {
	valid, err := (&OpusHead{Version: 1, Channels: 2, PreSkip: 312}).Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "OpusTail")

	badVersion := append([]byte(nil), valid...)
	badVersion[8] = 0x20

	badChannels := append([]byte(nil), valid...)
	badChannels[9] = 0

	surround := append([]byte(nil), valid...)
	surround[9] = 3

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"truncated", valid[:10], ErrBadOpusHead},
		{"bad magic", badMagic, ErrBadOpusHead},
		{"incompatible version", badVersion, ErrUnsupportedOpusVersion},
		{"zero channels", badChannels, ErrBadOpusHead},
		{"family 0 with 3 channels", surround, ErrBadOpusHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalOpusHead(tt.data); !errors.Is(err, tt.wantErr) {
				t.Fatalf("UnmarshalOpusHead error=%v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpusTagsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tags OpusTags
	}{
		{"vendor only", OpusTags{Vendor: "audiopus"}},
		{
			"with comments",
			OpusTags{
				Vendor:   "audiopus",
				Comments: []string{"TITLE=test tone", "ARTIST=nobody"},
			},
		},
		{"empty vendor", OpusTags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.tags.Marshal()
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			got, err := UnmarshalOpusTags(data)
			if err != nil {
				t.Fatalf("UnmarshalOpusTags failed: %v", err)
			}

			if diff := cmp.Diff(&tt.tags, got); diff != "" {
				t.Fatalf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalOpusTagsErrors(t *testing.T) {
	valid, err := (&OpusTags{Vendor: "audiopus", Comments: []string{"TITLE=x"}}).Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "OpusTail")

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", valid[:8]},
		{"bad magic", badMagic},
		{"truncated vendor", valid[:14]},
		{"truncated comment", valid[:len(valid)-3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalOpusTags(tt.data); !errors.Is(err, ErrBadOpusTags) {
				t.Fatalf("UnmarshalOpusTags error=%v, want ErrBadOpusTags", err)
			}
		})
	}
}
