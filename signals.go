package audiopus

// SignalSample constrains the PCM sample representations libopus
// understands: 16-bit integer and 32-bit float.
type SignalSample interface {
	~int16 | ~float32
}

// MutSignals wraps a PCM buffer that native calls fill with output,
// e.g. the buffer decoded audio is written into. Construction verifies
// the buffer's length fits the native library's signed 32-bit limit.
type MutSignals[T SignalSample] struct {
	data []T
}

// NewMutSignals validates data's length against the native limit and
// wraps it. The buffer is borrowed, not copied.
func NewMutSignals[T SignalSample](data []T) (MutSignals[T], error) {
	if len(data) > maxInt32 {
		return MutSignals[T]{}, ErrSignalsTooLarge
	}

	return MutSignals[T]{data: data}, nil
}

// Len returns the wrapped buffer's length. The length was verified on
// construction, so it always fits an int32.
func (s MutSignals[T]) Len() int {
	return len(s.data)
}

// Data returns the wrapped buffer.
func (s MutSignals[T]) Data() []T {
	return s.data
}
