package audiopus

/*
#cgo pkg-config: opus
#include <opus.h>
*/
import "C"

import "errors"

var (
	// ErrInvalidApplication is returned when a value does not match a
	// documented Application.
	ErrInvalidApplication = errors.New("invalid application")
	// ErrInvalidBandwidth is returned when a value does not match a
	// documented Bandwidth.
	ErrInvalidBandwidth = errors.New("invalid bandwidth")
	// ErrInvalidBitrate is returned when a value does not match a
	// documented Bitrate; negative values are invalid.
	ErrInvalidBitrate = errors.New("invalid bitrate")
	// ErrInvalidSignal is returned when a value does not match a
	// documented Signal.
	ErrInvalidSignal = errors.New("invalid signal")
	// ErrInvalidComplexity is returned when a complexity is lower than 0
	// or higher than 10.
	ErrInvalidComplexity = errors.New("invalid complexity")
	// ErrInvalidSampleRate is returned when a value does not match a
	// documented SampleRate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	// ErrInvalidChannels is returned when a value does not match a
	// documented channel count.
	ErrInvalidChannels = errors.New("invalid channels")
	// ErrEmptyPacket is returned when a packet contains no elements;
	// Opus does not operate on empty packets.
	ErrEmptyPacket = errors.New("passed packet contained no elements")
	// ErrPacketTooLarge is returned when a packet exceeds Opus' maximum
	// length of a signed 32-bit integer.
	ErrPacketTooLarge = errors.New("packet's length exceeded max int32")
	// ErrSignalsTooLarge is returned when a PCM buffer exceeds Opus'
	// maximum length of a signed 32-bit integer.
	ErrSignalsTooLarge = errors.New("signals' length exceeded max int32")
)

// ErrorCode represents an error value returned by native libopus. All
// documented native errors are negative; Unknown marks a value libopus
// returned that is not documented.
type ErrorCode int

const (
	// ErrBadArgument indicates one or more invalid/out of range arguments.
	ErrBadArgument = ErrorCode(C.OPUS_BAD_ARG)
	// ErrBufferTooSmall indicates not enough bytes allocated in the buffer.
	ErrBufferTooSmall = ErrorCode(C.OPUS_BUFFER_TOO_SMALL)
	// ErrInternal indicates an internal error inside the native library.
	ErrInternal = ErrorCode(C.OPUS_INTERNAL_ERROR)
	// ErrInvalidPacket indicates the compressed data passed is corrupted.
	ErrInvalidPacket = ErrorCode(C.OPUS_INVALID_PACKET)
	// ErrUnimplemented indicates an invalid/unsupported request number.
	ErrUnimplemented = ErrorCode(C.OPUS_UNIMPLEMENTED)
	// ErrInvalidState indicates an encoder or decoder structure is
	// invalid or already freed.
	ErrInvalidState = ErrorCode(C.OPUS_INVALID_STATE)
	// ErrAllocFail indicates a memory allocation has failed.
	ErrAllocFail = ErrorCode(C.OPUS_ALLOC_FAIL)
	// ErrUnknown marks an error value sent by Opus that is not
	// documented. 0 is unrelated to Opus and just a marker to
	// differentiate from Opus' own errors, which are all negative.
	ErrUnknown = ErrorCode(0)
)

func (e ErrorCode) Error() string {
	switch e {
	case ErrBadArgument:
		return "passed argument violated Opus' specified requirements"
	case ErrBufferTooSmall:
		return "passed buffer was too small"
	case ErrInternal:
		return "internal error inside Opus occurred"
	case ErrInvalidPacket:
		return "Opus received a packet violating requirements"
	case ErrUnimplemented:
		return "unimplemented code branch was attempted to be executed"
	case ErrInvalidState:
		return "Opus-type instance is in an invalid state"
	case ErrAllocFail:
		return "Opus was unable to allocate memory"
	default:
		return "Opus returned an undocumented error"
	}
}

// errorCode normalizes a native return value to a documented ErrorCode.
func errorCode(ret C.int) ErrorCode {
	switch ErrorCode(ret) {
	case ErrBadArgument, ErrBufferTooSmall, ErrInternal, ErrInvalidPacket,
		ErrUnimplemented, ErrInvalidState, ErrAllocFail:
		return ErrorCode(ret)
	default:
		return ErrUnknown
	}
}

// mapErr checks whether a native return value indicates an error.
// Negative values map to an ErrorCode, non-negative values pass through.
func mapErr(ret C.int) (int, error) {
	if ret < 0 {
		return 0, errorCode(ret)
	}

	return int(ret), nil
}
