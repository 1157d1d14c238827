package audiopus

/*
#include <opus.h>
*/
import "C"

// SoftClip applies soft-clipping to bring a float signal within the
// [-1, 1] range, avoiding the hard clipping distortion an integer
// conversion would introduce. The two-sample memory carries the clip
// state across consecutive buffers of the same stream.
type SoftClip struct {
	channels Channels
	memory   [2]float32
}

// NewSoftClip creates a soft-clipping state for the given channel
// count.
func NewSoftClip(channels Channels) *SoftClip {
	return &SoftClip{channels: channels}
}

// Apply soft-clips the interleaved signal in place. An empty signal is
// a no-op.
func (s *SoftClip) Apply(signals MutSignals[float32]) error {
	if signals.Len() == 0 {
		return nil
	}

	C.opus_pcm_soft_clip(
		(*C.float)(&signals.data[0]),
		C.int(signals.Len()/int(s.channels)),
		C.int(s.channels),
		(*C.float)(&s.memory[0]),
	)

	return nil
}
