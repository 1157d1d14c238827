package audiopus

/*
#include <opus.h>
*/
import "C"

import "fmt"

// SampleRate represents the sample rates Opus can operate at, in Hertz.
type SampleRate int32

const (
	Hz8000  SampleRate = 8000
	Hz12000 SampleRate = 12000
	Hz16000 SampleRate = 16000
	Hz24000 SampleRate = 24000
	Hz48000 SampleRate = 48000
)

// NewSampleRate validates that hz is one of the discrete sample rates
// Opus supports.
func NewSampleRate(hz int) (SampleRate, error) {
	switch SampleRate(hz) {
	case Hz8000, Hz12000, Hz16000, Hz24000, Hz48000:
		return SampleRate(hz), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, hz)
	}
}

// Channels represents the audio channel counts Opus can use.
type Channels int32

const (
	// ChannelsAuto is not supported when constructing encoders or decoders.
	ChannelsAuto = Channels(C.OPUS_AUTO)
	Mono         = Channels(1)
	Stereo       = Channels(2)
)

// NewChannels validates that value matches a documented channel count.
func NewChannels(value int) (Channels, error) {
	switch Channels(value) {
	case ChannelsAuto, Mono, Stereo:
		return Channels(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannels, value)
	}
}

// IsMono reports whether c is a single channel.
func (c Channels) IsMono() bool {
	return c == Mono
}

// IsStereo reports whether c is a channel pair.
func (c Channels) IsStereo() bool {
	return c == Stereo
}

// Application represents the application types Opus optimizes an
// encoder for.
type Application int32

const (
	// AppVoIP is best for most VoIP/videoconference applications where
	// listening quality and intelligibility matter most.
	AppVoIP = Application(C.OPUS_APPLICATION_VOIP)
	// AppAudio is best for broadcast/high-fidelity applications where
	// the decoded audio should be as close as possible to the input.
	AppAudio = Application(C.OPUS_APPLICATION_AUDIO)
	// AppLowDelay should only be used when lowest-achievable latency is
	// what matters most.
	AppLowDelay = Application(C.OPUS_APPLICATION_RESTRICTED_LOWDELAY)
)

// NewApplication validates that value matches a documented application.
func NewApplication(value int) (Application, error) {
	switch Application(value) {
	case AppVoIP, AppAudio, AppLowDelay:
		return Application(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidApplication, value)
	}
}

// Bandwidth represents the bandpasses of an Opus stream.
type Bandwidth int32

const (
	// BandwidthAuto lets the encoder pick the bandwidth automatically.
	BandwidthAuto = Bandwidth(C.OPUS_AUTO)
	// Narrowband is a 4kHz bandpass.
	Narrowband = Bandwidth(C.OPUS_BANDWIDTH_NARROWBAND)
	// Mediumband is a 6kHz bandpass.
	Mediumband = Bandwidth(C.OPUS_BANDWIDTH_MEDIUMBAND)
	// Wideband is an 8kHz bandpass.
	Wideband = Bandwidth(C.OPUS_BANDWIDTH_WIDEBAND)
	// Superwideband is a 12kHz bandpass.
	Superwideband = Bandwidth(C.OPUS_BANDWIDTH_SUPERWIDEBAND)
	// Fullband is a 20kHz bandpass.
	Fullband = Bandwidth(C.OPUS_BANDWIDTH_FULLBAND)
)

// NewBandwidth validates that value matches a documented bandwidth.
func NewBandwidth(value int) (Bandwidth, error) {
	switch Bandwidth(value) {
	case BandwidthAuto, Narrowband, Mediumband, Wideband, Superwideband, Fullband:
		return Bandwidth(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBandwidth, value)
	}
}

// Signal represents the signal hints helping the encoder's mode selection.
type Signal int32

const (
	SignalAuto  = Signal(C.OPUS_AUTO)
	SignalVoice = Signal(C.OPUS_SIGNAL_VOICE)
	SignalMusic = Signal(C.OPUS_SIGNAL_MUSIC)
)

// NewSignal validates that value matches a documented signal type.
func NewSignal(value int) (Signal, error) {
	switch Signal(value) {
	case SignalAuto, SignalVoice, SignalMusic:
		return Signal(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSignal, value)
	}
}

// Bitrate configures the encoder's rate. Positive values are explicit
// bits per second; BitrateAuto and BitrateMax are the two special modes.
type Bitrate int32

const (
	// BitrateAuto lets the encoder decide the rate (not recommended).
	BitrateAuto = Bitrate(C.OPUS_AUTO)
	// BitrateMax makes the codec use as much rate as it can, which is
	// useful for controlling the rate by adjusting the output buffer size.
	BitrateMax = Bitrate(C.OPUS_BITRATE_MAX)
)

// NewBitrate validates that value is a positive rate in bits per second
// or one of the two special modes.
func NewBitrate(value int) (Bitrate, error) {
	switch {
	case Bitrate(value) == BitrateAuto || Bitrate(value) == BitrateMax:
		return Bitrate(value), nil
	case value > 0 && value <= maxInt32:
		return Bitrate(value), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBitrate, value)
	}
}

const maxInt32 = 1<<31 - 1
