// SPDX-License-Identifier: EPL-2.0

// Package retrorain is a multi-track ambient sound mixer.
//
// A fixed catalogue of looped clips (rain, wind, fire...) can each be
// started, stopped and given its own volume, and a master control pauses,
// resumes and scales the whole mix.
//
// # Packages
//
//   - catalog: the clip catalogue, loaded once from a directory
//   - mixer: playback channels and the controller that owns play/pause
//     state, the active set and the gain arithmetic
//   - playback: a software mixing engine that loops decoded clips
//   - playback/otodevice: sound card output through oto
//   - audio, formats/*: the decoding pipeline (WAV, MP3, Ogg Vorbis, AIFF)
//
// # Quick Start
//
//	reg := retrorain.NewRegistry()
//	cat := catalog.New()
//	if _, err := cat.LoadDir("res/audio", reg.Formats()); err != nil {
//		return err
//	}
//
//	eng, err := playback.NewEngine(reg, 44100, 2)
//	if err != nil {
//		return err
//	}
//	defer eng.Shutdown()
//
//	dev, err := otodevice.New(eng, 44100, 2, 100*time.Millisecond, nil)
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
//
//	ctl := mixer.NewController(cat, eng)
//
//	_ = ctl.ToggleChannel("rain.wav")  // rain starts, master shows playing
//	_ = ctl.SetMasterVolume(0.5)
//	_ = ctl.ToggleMaster()             // everything pauses
//
// # Decoding
//
// DecodeAll turns any audio.Source into PCM at the engine's format:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm, err := retrorain.DecodeAll(src, 44100, 2, 4096)
package retrorain
