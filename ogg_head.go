package audiopus

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Identification and comment header handling for Ogg encapsulated Opus
// streams, as defined by RFC 7845. These headers occupy the first two
// packets of an Ogg Opus stream and carry everything a player needs
// before touching the codec.

var (
	oggOpusHeadMagic = []byte("OpusHead")
	oggOpusTagsMagic = []byte("OpusTags")

	// ErrBadOpusHead is returned when an identification header does not
	// follow RFC 7845.
	ErrBadOpusHead = errors.New("malformed OpusHead header")
	// ErrBadOpusTags is returned when a comment header does not follow
	// RFC 7845.
	ErrBadOpusTags = errors.New("malformed OpusTags header")
	// ErrUnsupportedOpusVersion is returned when an identification
	// header carries an incompatible version (upper nibble non-zero).
	ErrUnsupportedOpusVersion = errors.New("unsupported OpusHead version")
)

// OpusHead is the identification header of an Ogg Opus stream.
type OpusHead struct {
	// Version of the encapsulation, 1 for RFC 7845. Versions sharing
	// the upper nibble 0 are backwards compatible.
	Version uint8
	// Channels is the output channel count, at least 1.
	Channels uint8
	// PreSkip is the number of samples at 48 kHz to discard from the
	// decoder output before playback.
	PreSkip uint16
	// InputSampleRate is the sample rate of the original input, in Hz.
	// This is informational; playback is always at 48 kHz.
	InputSampleRate uint32
	// OutputGain scales the decoder output, in Q7.8 dB.
	OutputGain int16
	// MappingFamily selects the channel mapping. Family 0 covers mono
	// and stereo without a mapping table.
	MappingFamily uint8
	// StreamCount, CoupledCount, and Mapping are only present for
	// mapping families other than 0.
	StreamCount  uint8
	CoupledCount uint8
	Mapping      []uint8
}

// Marshal serializes the header into the payload of the first Ogg Opus
// packet.
func (h *OpusHead) Marshal() ([]byte, error) {
	if h.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrBadOpusHead, h.Channels)
	}

	if h.MappingFamily == 0 && h.Channels > 2 {
		return nil, fmt.Errorf("%w: mapping family 0 supports at most 2 channels, got %d",
			ErrBadOpusHead, h.Channels)
	}

	buf := bytes.NewBuffer(make([]byte, 0, 19+2+len(h.Mapping)))
	buf.Write(oggOpusHeadMagic)
	buf.WriteByte(h.Version)
	buf.WriteByte(h.Channels)

	for _, v := range []any{h.PreSkip, h.InputSampleRate, h.OutputGain} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	buf.WriteByte(h.MappingFamily)

	if h.MappingFamily != 0 {
		if len(h.Mapping) != int(h.Channels) {
			return nil, fmt.Errorf("%w: mapping table has %d entries for %d channels",
				ErrBadOpusHead, len(h.Mapping), h.Channels)
		}

		buf.WriteByte(h.StreamCount)
		buf.WriteByte(h.CoupledCount)
		buf.Write(h.Mapping)
	}

	return buf.Bytes(), nil
}

// UnmarshalOpusHead parses the identification header from the first
// packet of an Ogg Opus stream.
func UnmarshalOpusHead(data []byte) (*OpusHead, error) {
	if len(data) < 19 || !bytes.Equal(data[:8], oggOpusHeadMagic) {
		return nil, ErrBadOpusHead
	}

	head := &OpusHead{
		Version:         data[8],
		Channels:        data[9],
		PreSkip:         binary.LittleEndian.Uint16(data[10:12]),
		InputSampleRate: binary.LittleEndian.Uint32(data[12:16]),
		OutputGain:      int16(binary.LittleEndian.Uint16(data[16:18])),
		MappingFamily:   data[18],
	}

	if head.Version>>4 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedOpusVersion, head.Version)
	}

	if head.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count 0", ErrBadOpusHead)
	}

	if head.MappingFamily == 0 {
		if head.Channels > 2 {
			return nil, fmt.Errorf("%w: mapping family 0 supports at most 2 channels, got %d",
				ErrBadOpusHead, head.Channels)
		}

		return head, nil
	}

	if len(data) < 21+int(head.Channels) {
		return nil, fmt.Errorf("%w: truncated mapping table", ErrBadOpusHead)
	}

	head.StreamCount = data[19]
	head.CoupledCount = data[20]
	head.Mapping = append([]uint8(nil), data[21:21+int(head.Channels)]...)

	return head, nil
}

// OpusTags is the comment header of an Ogg Opus stream, carrying a
// vendor string and a list of "KEY=value" user comments.
type OpusTags struct {
	Vendor   string
	Comments []string
}

// Marshal serializes the header into the payload of the second Ogg
// Opus packet.
func (t *OpusTags) Marshal() ([]byte, error) {
	size := 8 + 4 + len(t.Vendor) + 4
	for _, comment := range t.Comments {
		size += 4 + len(comment)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	buf.Write(oggOpusTagsMagic)

	writeLenPrefixed := func(s string) error {
		if err := binary.Write(buf, binary.LittleEndian, uint32(len(s))); err != nil {
			return err
		}

		_, err := buf.WriteString(s)

		return err
	}

	if err := writeLenPrefixed(t.Vendor); err != nil {
		return nil, err
	}

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(t.Comments))); err != nil {
		return nil, err
	}

	for _, comment := range t.Comments {
		if err := writeLenPrefixed(comment); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalOpusTags parses the comment header from the second packet
// of an Ogg Opus stream.
func UnmarshalOpusTags(data []byte) (*OpusTags, error) {
	if len(data) < 16 || !bytes.Equal(data[:8], oggOpusTagsMagic) {
		return nil, ErrBadOpusTags
	}

	rest := data[8:]

	readLenPrefixed := func() (string, error) {
		if len(rest) < 4 {
			return "", fmt.Errorf("%w: truncated length", ErrBadOpusTags)
		}

		n := binary.LittleEndian.Uint32(rest[:4])
		rest = rest[4:]

		if uint32(len(rest)) < n {
			return "", fmt.Errorf("%w: truncated string", ErrBadOpusTags)
		}

		s := string(rest[:n])
		rest = rest[n:]

		return s, nil
	}

	vendor, err := readLenPrefixed()
	if err != nil {
		return nil, err
	}

	tags := &OpusTags{Vendor: vendor}

	if len(rest) < 4 {
		return nil, fmt.Errorf("%w: truncated comment count", ErrBadOpusTags)
	}

	count := binary.LittleEndian.Uint32(rest[:4])
	rest = rest[4:]

	for i := uint32(0); i < count; i++ {
		comment, err := readLenPrefixed()
		if err != nil {
			return nil, err
		}

		tags.Comments = append(tags.Comments, comment)
	}

	return tags, nil
}
