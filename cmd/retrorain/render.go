// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aCallin/retro-rain/formats/wav"
	"github.com/aCallin/retro-rain/playback"
	"github.com/aCallin/retro-rain/utils"
)

// renderChunk is the number of frames mixed per step.
const renderChunk = 4096

// render mixes d of engine output into a 16-bit WAV file at path.
func render(eng *playback.Engine, path string, d time.Duration) error {
	rate, channels := eng.SampleRate(), eng.Channels()
	frames := int(d.Seconds() * float64(rate))

	pcm := make([]int16, 0, frames*channels)
	buf := make([]float32, renderChunk*channels)

	for left := frames; left > 0; {
		n := min(left, renderChunk)
		chunk := buf[:n*channels]
		eng.Mix(chunk)
		for _, s := range chunk {
			pcm = append(pcm, utils.Float32ToInt16(s))
		}
		left -= n
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := wav.WriteWAV16(f, rate, channels, pcm); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
