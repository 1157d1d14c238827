package audiopus

/*
#include <opus.h>

// opus_decoder_ctl is variadic, which cgo cannot call directly.
static int bridge_decoder_get_ctl(OpusDecoder *st, int request, opus_int32 *value) {
	return opus_decoder_ctl(st, request, value);
}

static int bridge_decoder_set_ctl(OpusDecoder *st, int request, opus_int32 value) {
	return opus_decoder_ctl(st, request, value);
}
*/
import "C"

// Decoder wraps a native Opus decoder state.
//
// A Decoder can be handed from one goroutine to another, but a single
// instance must not be used concurrently.
type Decoder struct {
	pointer  *C.OpusDecoder
	channels Channels
}

// NewDecoder creates a new Opus decoder.
func NewDecoder(rate SampleRate, channels Channels) (*Decoder, error) {
	var opusCode C.int

	pointer := C.opus_decoder_create(C.opus_int32(rate), C.int(channels), &opusCode)

	if opusCode != C.OPUS_OK || pointer == nil {
		return nil, errorCode(opusCode)
	}

	return &Decoder{pointer: pointer, channels: channels}, nil
}

// Close destroys the native decoder state. It is safe to call on a nil
// or already closed Decoder.
func (d *Decoder) Close() error {
	if d == nil || d.pointer == nil {
		return nil
	}

	C.opus_decoder_destroy(d.pointer)
	d.pointer = nil

	return nil
}

// Channels returns the channel count the decoder was created with.
func (d *Decoder) Channels() Channels {
	return d.channels
}

// Decode decodes an Opus packet into output and returns the number of
// decoded samples per channel.
//
// Passing a nil input indicates a packet loss: the decoder fills
// output with concealment audio. With fec set, the output is instead
// recovered from in-band forward error correction data of the packet
// following the lost one.
func (d *Decoder) Decode(input *Packet, output MutSignals[int16], fec bool) (int, error) {
	inputPointer, inputLen := packetArgs(input)

	var outputPointer *C.opus_int16
	if output.Len() > 0 {
		outputPointer = (*C.opus_int16)(&output.data[0])
	}

	return mapErr(C.opus_decode(
		d.pointer,
		inputPointer,
		inputLen,
		outputPointer,
		C.int(output.Len()/int(d.channels)),
		boolToCInt(fec),
	))
}

// DecodeFloat decodes an Opus packet into floating point output and
// returns the number of decoded samples per channel. See Decode for
// the packet loss semantics.
func (d *Decoder) DecodeFloat(input *Packet, output MutSignals[float32], fec bool) (int, error) {
	inputPointer, inputLen := packetArgs(input)

	var outputPointer *C.float
	if output.Len() > 0 {
		outputPointer = (*C.float)(&output.data[0])
	}

	return mapErr(C.opus_decode_float(
		d.pointer,
		inputPointer,
		inputLen,
		outputPointer,
		C.int(output.Len()/int(d.channels)),
		boolToCInt(fec),
	))
}

// NbSamples returns the number of samples of an Opus packet at the
// decoder's sample rate.
func (d *Decoder) NbSamples(input Packet) (int, error) {
	return mapErr(C.opus_decoder_get_nb_samples(
		d.pointer,
		(*C.uchar)(&input.data[0]),
		C.opus_int32(input.Len()),
	))
}

// ctlGet issues a CTL get-request to the native decoder.
func (d *Decoder) ctlGet(request C.int) (int, error) {
	var value C.opus_int32

	if _, err := mapErr(C.bridge_decoder_get_ctl(d.pointer, request, &value)); err != nil {
		return 0, err
	}

	return int(value), nil
}

// ctlSet issues a CTL set-request to the native decoder.
func (d *Decoder) ctlSet(request C.int, value int) error {
	_, err := mapErr(C.bridge_decoder_set_ctl(d.pointer, request, C.opus_int32(value)))

	return err
}

// LastPacketDuration returns the duration, in samples, of the last
// packet successfully decoded or concealed.
func (d *Decoder) LastPacketDuration() (int, error) {
	return d.ctlGet(C.OPUS_GET_LAST_PACKET_DURATION_REQUEST)
}

// Pitch returns the pitch period at 48 kHz of the last decoded frame,
// if available. This can be used for any post-processing algorithm
// requiring the use of pitch, e.g. time stretching or shortening. If
// the last frame was not voiced, or if the pitch was not coded in the
// frame, zero is returned.
func (d *Decoder) Pitch() (int, error) {
	return d.ctlGet(C.OPUS_GET_PITCH_REQUEST)
}

// Gain returns the decoder's configured amount to scale the PCM signal
// by, in Q8 dB units.
func (d *Decoder) Gain() (int, error) {
	return d.ctlGet(C.OPUS_GET_GAIN_REQUEST)
}

// SetGain configures decoder gain adjustment, scaling the decoded
// output by a factor of gain specified in Q8 dB units. The range is
// -32768 to 32767 inclusive; values outside it return ErrBadArgument.
// The default is 0, indicating no adjustment. This setting survives
// decoder reset.
func (d *Decoder) SetGain(gain int) error {
	return d.ctlSet(C.OPUS_SET_GAIN_REQUEST, gain)
}

// FinalRange returns the final state of the codec's entropy coder.
func (d *Decoder) FinalRange() (uint32, error) {
	value, err := d.ctlGet(C.OPUS_GET_FINAL_RANGE_REQUEST)

	return uint32(value), err
}

// PhaseInversionDisabled returns the decoder's configured phase
// inversion status.
func (d *Decoder) PhaseInversionDisabled() (bool, error) {
	value, err := d.ctlGet(C.OPUS_GET_PHASE_INVERSION_DISABLED_REQUEST)

	return value == 1, err
}

// SetPhaseInversionDisabled disables the use of phase inversion when
// decoding intensity stereo. Disabling phase inversion in the decoder
// does not comply with RFC 6716, although it does not cause any
// interoperability issue.
func (d *Decoder) SetPhaseInversionDisabled(disabled bool) error {
	return d.ctlSet(C.OPUS_SET_PHASE_INVERSION_DISABLED_REQUEST, boolToInt(disabled))
}

// SampleRate returns the sampling rate the decoder was initialized
// with.
func (d *Decoder) SampleRate() (SampleRate, error) {
	value, err := d.ctlGet(C.OPUS_GET_SAMPLE_RATE_REQUEST)
	if err != nil {
		return 0, err
	}

	return NewSampleRate(value)
}

// ResetState resets the codec state to be equivalent to a freshly
// initialized state.
func (d *Decoder) ResetState() error {
	_, err := d.ctlGet(C.OPUS_RESET_STATE)

	return err
}

// Size returns the size of the underlying native decoder state in
// bytes.
func (d *Decoder) Size() int {
	return DecoderSize(d.channels)
}

// DecoderSize returns the size of a native Opus decoder state in bytes
// for the given channel count.
func DecoderSize(channels Channels) int {
	return int(C.opus_decoder_get_size(C.int(channels)))
}

// packetArgs maps an optional packet to the pointer/length pair native
// decode calls expect; a nil packet becomes a null pointer, indicating
// packet loss.
func packetArgs(input *Packet) (*C.uchar, C.opus_int32) {
	if input == nil {
		return nil, 0
	}

	return (*C.uchar)(&input.data[0]), C.opus_int32(input.Len())
}

func boolToCInt(b bool) C.int {
	if b {
		return 1
	}

	return 0
}
