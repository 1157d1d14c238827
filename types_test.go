package audiopus

import (
	"errors"
	"testing"
)

func TestNewSampleRate(t *testing.T) {
	tests := []struct {
		name    string
		hz      int
		want    SampleRate
		wantErr error
	}{
		{"8 kHz", 8000, Hz8000, nil},
		{"12 kHz", 12000, Hz12000, nil},
		{"16 kHz", 16000, Hz16000, nil},
		{"24 kHz", 24000, Hz24000, nil},
		{"48 kHz", 48000, Hz48000, nil},
		{"cd rate", 44100, 0, ErrInvalidSampleRate},
		{"zero", 0, 0, ErrInvalidSampleRate},
		{"negative", -8000, 0, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSampleRate(tt.hz)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewSampleRate(%d) error=%v, want %v", tt.hz, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewSampleRate(%d)=%d, want %d", tt.hz, got, tt.want)
			}
		})
	}
}

func TestNewChannels(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Channels
		wantErr error
	}{
		{"auto", -1000, ChannelsAuto, nil},
		{"mono", 1, Mono, nil},
		{"stereo", 2, Stereo, nil},
		{"zero", 0, 0, ErrInvalidChannels},
		{"surround", 6, 0, ErrInvalidChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewChannels(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewChannels(%d) error=%v, want %v", tt.value, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewChannels(%d)=%d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestChannelsHelpers(t *testing.T) {
	if !Mono.IsMono() || Mono.IsStereo() {
		t.Fatal("Mono misreported")
	}

	if !Stereo.IsStereo() || Stereo.IsMono() {
		t.Fatal("Stereo misreported")
	}

	if ChannelsAuto.IsMono() || ChannelsAuto.IsStereo() {
		t.Fatal("ChannelsAuto misreported")
	}
}

func TestNewApplication(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Application
		wantErr error
	}{
		{"voip", int(AppVoIP), AppVoIP, nil},
		{"audio", int(AppAudio), AppAudio, nil},
		{"lowdelay", int(AppLowDelay), AppLowDelay, nil},
		{"bogus", 11, 0, ErrInvalidApplication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewApplication(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewApplication(%d) error=%v, want %v", tt.value, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewApplication(%d)=%d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewBandwidth(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Bandwidth
		wantErr error
	}{
		{"auto", int(BandwidthAuto), BandwidthAuto, nil},
		{"narrowband", int(Narrowband), Narrowband, nil},
		{"mediumband", int(Mediumband), Mediumband, nil},
		{"wideband", int(Wideband), Wideband, nil},
		{"superwideband", int(Superwideband), Superwideband, nil},
		{"fullband", int(Fullband), Fullband, nil},
		{"bogus", 42, 0, ErrInvalidBandwidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBandwidth(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBandwidth(%d) error=%v, want %v", tt.value, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewBandwidth(%d)=%d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewSignal(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Signal
		wantErr error
	}{
		{"auto", int(SignalAuto), SignalAuto, nil},
		{"voice", int(SignalVoice), SignalVoice, nil},
		{"music", int(SignalMusic), SignalMusic, nil},
		{"zero", 0, 0, ErrInvalidSignal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSignal(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewSignal(%d) error=%v, want %v", tt.value, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewSignal(%d)=%d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewBitrate(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		want    Bitrate
		wantErr error
	}{
		{"auto", int(BitrateAuto), BitrateAuto, nil},
		{"max", int(BitrateMax), BitrateMax, nil},
		{"explicit", 96000, Bitrate(96000), nil},
		{"zero", 0, 0, ErrInvalidBitrate},
		{"negative", -96000, 0, ErrInvalidBitrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewBitrate(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBitrate(%d) error=%v, want %v", tt.value, err, tt.wantErr)
			}

			if got != tt.want {
				t.Fatalf("NewBitrate(%d)=%d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestNewMutSignals(t *testing.T) {
	signals, err := NewMutSignals(make([]int16, 960))
	if err != nil {
		t.Fatalf("NewMutSignals failed: %v", err)
	}

	if signals.Len() != 960 {
		t.Fatalf("Len()=%d, want 960", signals.Len())
	}

	empty, err := NewMutSignals([]float32(nil))
	if err != nil {
		t.Fatalf("NewMutSignals on nil slice failed: %v", err)
	}

	if empty.Len() != 0 {
		t.Fatalf("Len()=%d, want 0", empty.Len())
	}
}
