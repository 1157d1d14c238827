package audiopus

/*
#include <opus.h>

// opus_encoder_ctl is variadic, which cgo cannot call directly.
// The get/set shims cover every request the encoder issues; requests
// without an argument (OPUS_RESET_STATE) tolerate the extra pointer.
static int bridge_encoder_get_ctl(OpusEncoder *st, int request, opus_int32 *value) {
	return opus_encoder_ctl(st, request, value);
}

static int bridge_encoder_set_ctl(OpusEncoder *st, int request, opus_int32 value) {
	return opus_encoder_ctl(st, request, value);
}
*/
import "C"

import "fmt"

// Encoder wraps a native Opus encoder state and offers methods to
// encode and to issue requests to it.
//
// An Encoder can be handed from one goroutine to another, but a single
// instance must not be used concurrently.
type Encoder struct {
	pointer  *C.OpusEncoder
	channels Channels
}

// NewEncoder creates a new Opus encoder.
//
// ChannelsAuto is not accepted here; the native library rejects it with
// ErrBadArgument.
func NewEncoder(rate SampleRate, channels Channels, application Application) (*Encoder, error) {
	var opusCode C.int

	pointer := C.opus_encoder_create(
		C.opus_int32(rate),
		C.int(channels),
		C.int(application),
		&opusCode,
	)

	if opusCode != C.OPUS_OK || pointer == nil {
		return nil, errorCode(opusCode)
	}

	return &Encoder{pointer: pointer, channels: channels}, nil
}

// Close destroys the native encoder state. It is safe to call on a nil
// or already closed Encoder.
func (e *Encoder) Close() error {
	if e == nil || e.pointer == nil {
		return nil
	}

	C.opus_encoder_destroy(e.pointer)
	e.pointer = nil

	return nil
}

// Channels returns the channel count the encoder was created with.
func (e *Encoder) Channels() Channels {
	return e.channels
}

// Encode encodes an Opus frame.
//
// The interleaved pcm input is encoded into output and on success the
// length of the encoded packet is returned. The frame size, len(pcm)
// divided by the channel count, must be one of the durations Opus
// permits (2.5, 5, 10, 20, 40, or 60 ms).
func (e *Encoder) Encode(pcm []int16, output []byte) (int, error) {
	if err := encodeBufferCheck(len(pcm), len(output)); err != nil {
		return 0, err
	}

	return mapErr(C.opus_encode(
		e.pointer,
		(*C.opus_int16)(&pcm[0]),
		C.int(len(pcm)/int(e.channels)),
		(*C.uchar)(&output[0]),
		C.opus_int32(len(output)),
	))
}

// EncodeFloat encodes an Opus frame from floating point input in the
// [-1, 1] range. See Encode for the frame size requirements.
func (e *Encoder) EncodeFloat(pcm []float32, output []byte) (int, error) {
	if err := encodeBufferCheck(len(pcm), len(output)); err != nil {
		return 0, err
	}

	return mapErr(C.opus_encode_float(
		e.pointer,
		(*C.float)(&pcm[0]),
		C.int(len(pcm)/int(e.channels)),
		(*C.uchar)(&output[0]),
		C.opus_int32(len(output)),
	))
}

func encodeBufferCheck(pcmLen, outputLen int) error {
	if pcmLen == 0 || pcmLen > maxInt32 {
		return ErrSignalsTooLarge
	}

	if outputLen == 0 {
		return ErrEmptyPacket
	}

	if outputLen > maxInt32 {
		return ErrPacketTooLarge
	}

	return nil
}

// ctlGet issues a CTL get-request to the native encoder. As the
// Encoder's methods cover all supported CTLs, prefer them over calling
// this directly.
func (e *Encoder) ctlGet(request C.int) (int, error) {
	var value C.opus_int32

	if _, err := mapErr(C.bridge_encoder_get_ctl(e.pointer, request, &value)); err != nil {
		return 0, err
	}

	return int(value), nil
}

// ctlSet issues a CTL set-request to the native encoder.
func (e *Encoder) ctlSet(request C.int, value int) error {
	_, err := mapErr(C.bridge_encoder_set_ctl(e.pointer, request, C.opus_int32(value)))

	return err
}

// Complexity returns the encoder's complexity configuration.
func (e *Encoder) Complexity() (int, error) {
	return e.ctlGet(C.OPUS_GET_COMPLEXITY_REQUEST)
}

// SetComplexity configures the encoder's computational complexity,
// from 0 to 10 inclusive. The native library rejects values above 10
// with ErrBadArgument; negative values are rejected here.
func (e *Encoder) SetComplexity(complexity int) error {
	if complexity < 0 || complexity > 10 {
		return fmt.Errorf("%w: %d", ErrInvalidComplexity, complexity)
	}

	return e.ctlSet(C.OPUS_SET_COMPLEXITY_REQUEST, complexity)
}

// Application returns the encoder's configured application.
func (e *Encoder) Application() (Application, error) {
	value, err := e.ctlGet(C.OPUS_GET_APPLICATION_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewApplication(value)
}

// SetApplication configures the encoder's intended application. The
// initial value is a mandatory argument of NewEncoder.
func (e *Encoder) SetApplication(application Application) error {
	return e.ctlSet(C.OPUS_SET_APPLICATION_REQUEST, int(application))
}

// Bitrate returns the encoder's configured bitrate.
func (e *Encoder) Bitrate() (Bitrate, error) {
	value, err := e.ctlGet(C.OPUS_GET_BITRATE_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewBitrate(value)
}

// SetBitrate configures the rate of the encoder. Rates from 500 to
// 512000 bits per second are meaningful, as well as BitrateAuto and
// BitrateMax.
func (e *Encoder) SetBitrate(bitrate Bitrate) error {
	return e.ctlSet(C.OPUS_SET_BITRATE_REQUEST, int(bitrate))
}

// VBR reports whether variable bitrate is enabled in the encoder.
func (e *Encoder) VBR() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_VBR_REQUEST)

	return value == 1, err
}

// SetVBR enables or disables variable bitrate (VBR) in the encoder.
// The configured bitrate may not be met exactly because frames must be
// an integer number of bytes in length.
func (e *Encoder) SetVBR(enable bool) error {
	return e.ctlSet(C.OPUS_SET_VBR_REQUEST, boolToInt(enable))
}

// VBRConstraint reports whether constrained VBR is enabled.
func (e *Encoder) VBRConstraint() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_VBR_CONSTRAINT_REQUEST)

	return value == 1, err
}

// SetVBRConstraint enables or disables constrained VBR. Only the MDCT
// mode of Opus currently heeds the constraint; speech mode ignores it
// completely and hybrid mode may fail to obey it if the LPC layer uses
// more bitrate than the constraint would have permitted.
func (e *Encoder) SetVBRConstraint(enable bool) error {
	return e.ctlSet(C.OPUS_SET_VBR_CONSTRAINT_REQUEST, boolToInt(enable))
}

// InbandFEC reports whether inband forward error correction is enabled.
func (e *Encoder) InbandFEC() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_INBAND_FEC_REQUEST)

	return value == 1, err
}

// SetInbandFEC configures the encoder's use of inband forward error
// correction (FEC).
func (e *Encoder) SetInbandFEC(enable bool) error {
	return e.ctlSet(C.OPUS_SET_INBAND_FEC_REQUEST, boolToInt(enable))
}

// PacketLossPerc returns the encoder's configured packet loss
// percentage.
func (e *Encoder) PacketLossPerc() (int, error) {
	return e.ctlGet(C.OPUS_GET_PACKET_LOSS_PERC_REQUEST)
}

// SetPacketLossPerc configures the encoder's expected packet loss
// percentage. Higher values trigger progressively more loss resistant
// behavior at the expense of quality at a given bitrate in the absence
// of packet loss, but greater quality under loss.
func (e *Encoder) SetPacketLossPerc(percentage int) error {
	return e.ctlSet(C.OPUS_SET_PACKET_LOSS_PERC_REQUEST, percentage)
}

// Lookahead returns the total samples of delay added by the entire
// codec. The provided number of samples can be skipped from the start
// of the decoder's output to provide time aligned input and output;
// applications needing delay compensation should call this rather than
// hard-coding a value.
func (e *Encoder) Lookahead() (int, error) {
	return e.ctlGet(C.OPUS_GET_LOOKAHEAD_REQUEST)
}

// ForceChannels returns the encoder's forced channel configuration.
func (e *Encoder) ForceChannels() (Channels, error) {
	value, err := e.ctlGet(C.OPUS_GET_FORCE_CHANNELS_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewChannels(value)
}

// SetForceChannels configures mono/stereo forcing in the encoder,
// regardless of the format of the input audio. This is useful when the
// caller knows the input is currently a mono source embedded in a
// stereo stream.
func (e *Encoder) SetForceChannels(channels Channels) error {
	return e.ctlSet(C.OPUS_SET_FORCE_CHANNELS_REQUEST, int(channels))
}

// MaxBandwidth returns the encoder's configured maximum allowed
// bandpass.
func (e *Encoder) MaxBandwidth() (Bandwidth, error) {
	value, err := e.ctlGet(C.OPUS_GET_MAX_BANDWIDTH_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewBandwidth(value)
}

// SetMaxBandwidth configures the maximum bandpass the encoder will
// select automatically. Applications should normally use this instead
// of SetBandwidth, which still gives the encoder the freedom to reduce
// the bandpass when the bitrate becomes too low. BandwidthAuto is not
// accepted by the native library here.
func (e *Encoder) SetMaxBandwidth(bandwidth Bandwidth) error {
	return e.ctlSet(C.OPUS_SET_MAX_BANDWIDTH_REQUEST, int(bandwidth))
}

// Bandwidth returns the encoder's configured bandpass.
func (e *Encoder) Bandwidth() (Bandwidth, error) {
	value, err := e.ctlGet(C.OPUS_GET_BANDWIDTH_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewBandwidth(value)
}

// SetBandwidth sets the encoder's bandpass to a specific value,
// preventing the encoder from selecting it based on the available
// bitrate. If an application knows the bandpass of its input it should
// normally use SetMaxBandwidth instead.
func (e *Encoder) SetBandwidth(bandwidth Bandwidth) error {
	return e.ctlSet(C.OPUS_SET_BANDWIDTH_REQUEST, int(bandwidth))
}

// PredictionDisabled returns the encoder's configured prediction
// status.
func (e *Encoder) PredictionDisabled() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_PREDICTION_DISABLED_REQUEST)

	return value == 1, err
}

// SetPredictionDisabled disables almost all use of prediction, making
// frames almost completely independent. This reduces quality.
func (e *Encoder) SetPredictionDisabled(disabled bool) error {
	return e.ctlSet(C.OPUS_SET_PREDICTION_DISABLED_REQUEST, boolToInt(disabled))
}

// Signal returns the encoder's configured signal type.
func (e *Encoder) Signal() (Signal, error) {
	value, err := e.ctlGet(C.OPUS_GET_SIGNAL_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewSignal(value)
}

// SetSignal configures the type of signal being encoded. This is a
// hint which helps the encoder's mode selection.
func (e *Encoder) SetSignal(signal Signal) error {
	return e.ctlSet(C.OPUS_SET_SIGNAL_REQUEST, int(signal))
}

// DTX reports whether discontinuous transmission is enabled.
func (e *Encoder) DTX() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_DTX_REQUEST)

	return value == 1, err
}

// SetDTX configures the encoder's use of discontinuous transmission
// (DTX).
func (e *Encoder) SetDTX(enable bool) error {
	return e.ctlSet(C.OPUS_SET_DTX_REQUEST, boolToInt(enable))
}

// LSBDepth returns the encoder's configured signal depth.
func (e *Encoder) LSBDepth() (int, error) {
	return e.ctlGet(C.OPUS_GET_LSB_DEPTH_REQUEST)
}

// SetLSBDepth configures the depth of the signal being encoded, from 8
// to 24 inclusive. This is a hint which helps the encoder identify
// silence and near-silence: the number of significant bits of linear
// intensity below which the signal contains ignorable quantisation or
// other noise. A depth of 14 suits G.711 u-law input; 16 suits 16-bit
// linear PCM with EncodeFloat. When using Encode, or when libopus is
// compiled for fixed-point, the encoder uses the minimum of this value
// and 16.
func (e *Encoder) SetLSBDepth(depth int) error {
	return e.ctlSet(C.OPUS_SET_LSB_DEPTH_REQUEST, depth)
}

// FinalRange returns the final state of the codec's entropy coder.
// This is used for testing purposes: the decoder's state should be
// identical after decoding the payload, assuming no corruption.
func (e *Encoder) FinalRange() (uint32, error) {
	value, err := e.ctlGet(C.OPUS_GET_FINAL_RANGE_REQUEST)

	return uint32(value), err
}

// PhaseInversionDisabled returns the encoder's configured phase
// inversion status.
func (e *Encoder) PhaseInversionDisabled() (bool, error) {
	value, err := e.ctlGet(C.OPUS_GET_PHASE_INVERSION_DISABLED_REQUEST)

	return value == 1, err
}

// SetPhaseInversionDisabled disables the use of phase inversion for
// intensity stereo, improving the quality of mono downmixes but
// slightly reducing normal stereo quality.
func (e *Encoder) SetPhaseInversionDisabled(disabled bool) error {
	return e.ctlSet(C.OPUS_SET_PHASE_INVERSION_DISABLED_REQUEST, boolToInt(disabled))
}

// SampleRate returns the sampling rate the encoder was initialized
// with.
func (e *Encoder) SampleRate() (SampleRate, error) {
	value, err := e.ctlGet(C.OPUS_GET_SAMPLE_RATE_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewSampleRate(value)
}

// ResetState resets the codec state to be equivalent to a freshly
// initialized state. This should be called when switching streams in
// order to prevent back to back coding from giving different results
// from one at a time coding.
func (e *Encoder) ResetState() error {
	_, err := e.ctlGet(C.OPUS_RESET_STATE)

	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
