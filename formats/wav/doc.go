// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding goes through github.com/go-audio/wav, so files with extra
// chunks (LIST, fact, cue) before the data chunk are accepted. Integer
// PCM of 8, 16, 24 and 32 bits is supported, mono or multichannel, at any
// sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// WriteWAV16 writes canonical 16-bit PCM, used to render a mix to disk:
//
//	err := wav.WriteWAV16(out, 44100, 2, samples)
package wav
