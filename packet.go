package audiopus

/*
#include <opus.h>
*/
import "C"

// packetLenCheck enforces the two guarantees native calls rely on: a
// packet cannot be empty and may not exceed the signed 32-bit limit.
func packetLenCheck(data []byte) (int32, error) {
	switch {
	case len(data) == 0:
		return 0, ErrEmptyPacket
	case len(data) > maxInt32:
		return 0, ErrPacketTooLarge
	default:
		return int32(len(data)), nil
	}
}

// Packet wraps an encoded Opus packet and guarantees it has at least
// one element and no more than max int32.
type Packet struct {
	data []byte
}

// NewPacket validates data and wraps it. The buffer is borrowed, not
// copied, and must not be mutated while the Packet is in use.
func NewPacket(data []byte) (Packet, error) {
	if _, err := packetLenCheck(data); err != nil {
		return Packet{}, err
	}

	return Packet{data: data}, nil
}

// Len returns the packet's length. The underlying buffer was verified
// on construction, so the length always fits an int32.
func (p Packet) Len() int {
	return len(p.data)
}

// Data returns the wrapped packet bytes.
func (p Packet) Data() []byte {
	return p.data
}

// MutPacket wraps a mutable packet buffer. Because the underlying
// buffer can be resized between uses, its length is re-checked each
// time a native call needs it.
type MutPacket struct {
	data []byte
}

// NewMutPacket validates data and wraps it. The buffer is borrowed,
// not copied.
func NewMutPacket(data []byte) (MutPacket, error) {
	if _, err := packetLenCheck(data); err != nil {
		return MutPacket{}, err
	}

	return MutPacket{data: data}, nil
}

// Len re-checks the underlying buffer against the packet requirements
// and returns its length.
func (p MutPacket) Len() (int, error) {
	n, err := packetLenCheck(p.data)

	return int(n), err
}

// Data returns the wrapped packet bytes.
func (p MutPacket) Data() []byte {
	return p.data
}

// PacketBandwidth returns the bandwidth of an Opus packet.
func PacketBandwidth(packet Packet) (Bandwidth, error) {
	ret, err := mapErr(C.opus_packet_get_bandwidth((*C.uchar)(&packet.data[0])))
	if err != nil {
		return 0, err
	}

	return NewBandwidth(ret)
}

// SamplesPerFrame returns the number of samples per frame of an Opus
// packet at the given sample rate.
func SamplesPerFrame(packet Packet, rate SampleRate) (int, error) {
	return mapErr(C.opus_packet_get_samples_per_frame(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(rate),
	))
}

// PacketNbSamples returns the number of samples of an Opus packet at
// the given sample rate.
func PacketNbSamples(packet Packet, rate SampleRate) (int, error) {
	return mapErr(C.opus_packet_get_nb_samples(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packet.Len()),
		C.opus_int32(rate),
	))
}

// PacketNbChannels returns the number of channels of an Opus packet.
func PacketNbChannels(packet Packet) (Channels, error) {
	ret, err := mapErr(C.opus_packet_get_nb_channels((*C.uchar)(&packet.data[0])))
	if err != nil {
		return 0, err
	}

	return NewChannels(ret)
}

// PacketNbFrames returns the number of frames of an Opus packet.
func PacketNbFrames(packet Packet) (int, error) {
	return mapErr(C.opus_packet_get_nb_frames(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packet.Len()),
	))
}
