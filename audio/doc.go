// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding pipeline primitives used to turn a
// clip file into PCM the playback engine can mix.
//
// This package contains:
//   - Source interface for audio input
//   - Decoder and Registry for format lookup by name or file extension
//   - Resampler for sample rate conversion
//   - ChannelMapper for channel count conversion
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors implement Source so they can be chained:
//
//	res := audio.NewResampler(src, 44100)
//	out, _ := audio.NewChannelMapper(res, 2)
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, format, ok := registry.ForPath("res/audio/rain.wav")
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel. Reads
// return io.EOF once the stream is finished; the final read may return
// samples together with io.EOF.
package audio
