// Package audiopus is a high level binding for the Opus audio codec.
//
// The package wraps native libopus through cgo and exposes its encoder,
// decoder, packet utilities, repacketizer, and soft-clipping routines
// through validated types. Values libopus has preconditions on (sample
// rates, channel counts, applications, bandwidths, bitrates, packet and
// PCM buffers) are checked on construction, so invalid input surfaces as
// a Go error instead of undefined native behavior.
//
// A Packet wraps an encoded byte slice and guarantees it is non-empty
// and no longer than the native library's 32-bit length limit. MutPacket
// is the mutable counterpart and re-checks its length each time it is
// handed to a native call. MutSignals wraps a PCM buffer the native
// library writes into, with the same length guarantee.
//
// Encoder, Decoder, and Repacketizer own native handles. They are safe
// to hand from one goroutine to another, but a single instance must not
// be used concurrently. Call Close to release the native state.
//
// Building requires libopus and its headers; discovery goes through
// pkg-config ("pkg-config --cflags --libs opus").
package audiopus
