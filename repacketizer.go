package audiopus

/*
#include <opus.h>
#include <opus_multistream.h>
*/
import "C"

// Repacketizer wraps a native Opus repacketizer, which merges packets
// into larger ones or splits them across frame boundaries.
//
// Submit packets with Cat, then extract the merged result with Out or
// OutRange. The packets handed to Cat stay borrowed until then.
type Repacketizer struct {
	pointer *C.OpusRepacketizer
}

// NewRepacketizer creates a new repacketizer in its initial state.
func NewRepacketizer() *Repacketizer {
	return &Repacketizer{pointer: C.opus_repacketizer_create()}
}

// Close destroys the native repacketizer state. It is safe to call on
// a nil or already closed Repacketizer.
func (r *Repacketizer) Close() error {
	if r == nil || r.pointer == nil {
		return nil
	}

	C.opus_repacketizer_destroy(r.pointer)
	r.pointer = nil

	return nil
}

// Reset re-initializes the repacketizer so it can combine a new
// sequence of packets.
func (r *Repacketizer) Reset() {
	C.opus_repacketizer_init(r.pointer)
}

// NbFrames returns the total number of frames contained in the packets
// submitted so far.
func (r *Repacketizer) NbFrames() int {
	return int(C.opus_repacketizer_get_nb_frames(r.pointer))
}

// Cat adds a packet to the current repacketizer state. All packets
// submitted between resets must share the TOC configuration and the
// total duration may not exceed 120 ms.
func (r *Repacketizer) Cat(packet Packet) error {
	_, err := mapErr(C.opus_repacketizer_cat(
		r.pointer,
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packet.Len()),
	))

	return err
}

// Out constructs a new packet from all frames submitted so far and
// writes it into output, returning the merged packet's length.
func (r *Repacketizer) Out(output MutPacket) (int, error) {
	outputLen, err := output.Len()
	if err != nil {
		return 0, err
	}

	return mapErr(C.opus_repacketizer_out(
		r.pointer,
		(*C.uchar)(&output.data[0]),
		C.opus_int32(outputLen),
	))
}

// OutRange constructs a new packet from the frame range [begin, end)
// of the data submitted so far and writes it into output, returning
// the merged packet's length.
func (r *Repacketizer) OutRange(begin, end int, output MutPacket) (int, error) {
	outputLen, err := output.Len()
	if err != nil {
		return 0, err
	}

	return mapErr(C.opus_repacketizer_out_range(
		r.pointer,
		C.int(begin),
		C.int(end),
		(*C.uchar)(&output.data[0]),
		C.opus_int32(outputLen),
	))
}

// RepacketizerSize returns the native repacketizer state's size in
// bytes.
func RepacketizerSize() int {
	return int(C.opus_repacketizer_get_size())
}

// PacketPad pads a given Opus packet in place to a larger size,
// possibly changing the TOC sequence. newLen is the packet's desired
// total length, including the bytes already in use.
func PacketPad(packet MutPacket, newLen int) error {
	packetLen, err := packet.Len()
	if err != nil {
		return err
	}

	_, err = mapErr(C.opus_packet_pad(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packetLen),
		C.opus_int32(newLen),
	))

	return err
}

// PacketUnpad removes all padding from a given Opus packet in place
// and returns the new length.
func PacketUnpad(packet MutPacket) (int, error) {
	packetLen, err := packet.Len()
	if err != nil {
		return 0, err
	}

	return mapErr(C.opus_packet_unpad(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packetLen),
	))
}

// MultistreamPacketPad pads a given multistream Opus packet in place
// to a larger size, possibly changing the TOC sequence.
func MultistreamPacketPad(packet MutPacket, newLen, nbStreams int) error {
	packetLen, err := packet.Len()
	if err != nil {
		return err
	}

	_, err = mapErr(C.opus_multistream_packet_pad(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packetLen),
		C.opus_int32(newLen),
		C.int(nbStreams),
	))

	return err
}

// MultistreamPacketUnpad removes all padding from a given multistream
// Opus packet in place and returns the new length.
func MultistreamPacketUnpad(packet MutPacket, nbStreams int) (int, error) {
	packetLen, err := packet.Len()
	if err != nil {
		return 0, err
	}

	return mapErr(C.opus_multistream_packet_unpad(
		(*C.uchar)(&packet.data[0]),
		C.opus_int32(packetLen),
		C.int(nbStreams),
	))
}
