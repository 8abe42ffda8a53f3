// SPDX-License-Identifier: EPL-2.0

// Package otodevice plays a playback.Engine through the system audio
// device using oto.
package otodevice

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/aCallin/retro-rain/mixer"
)

// oto allows a single context per process.
var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
	ctxOpts oto.NewContextOptions
)

// Device pulls 16-bit little-endian PCM from a reader and plays it.
type Device struct {
	player *oto.Player
	logger *slog.Logger

	mtx    sync.Mutex
	closed bool
}

// New opens the audio device at sampleRate and channels and starts
// playing src. buffer is the device latency; zero lets oto choose.
//
// Errors match mixer.ErrEngineUnavailable.
func New(src io.Reader, sampleRate, channels int, buffer time.Duration, logger *slog.Logger) (*Device, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c, err := sharedContext(sampleRate, channels, buffer)
	if err != nil {
		return nil, err
	}

	p := c.NewPlayer(src)
	p.Play()
	logger.Info("audio device open", "rate", sampleRate, "channels", channels, "buffer", buffer)

	return &Device{player: p, logger: logger}, nil
}

func sharedContext(sampleRate, channels int, buffer time.Duration) (*oto.Context, error) {
	opts := oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   buffer,
	}

	ctxOnce.Do(func() {
		var ready chan struct{}
		ctx, ready, ctxErr = oto.NewContext(&opts)
		if ctxErr != nil {
			return
		}
		<-ready
		ctxOpts = opts
	})

	if ctxErr != nil {
		return nil, fmt.Errorf("%w: %w", mixer.ErrEngineUnavailable, ctxErr)
	}
	if ctxOpts.SampleRate != sampleRate || ctxOpts.ChannelCount != channels {
		return nil, fmt.Errorf("%w: device already open at %d Hz, %d channels",
			mixer.ErrEngineUnavailable, ctxOpts.SampleRate, ctxOpts.ChannelCount)
	}

	return ctx, nil
}

// Err reports an asynchronous playback failure, if any.
func (d *Device) Err() error {
	if err := d.player.Err(); err != nil {
		return fmt.Errorf("%w: %w", mixer.ErrEngineUnavailable, err)
	}
	return nil
}

// Close stops playback. The underlying oto context stays alive for the
// rest of the process.
func (d *Device) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.logger.Debug("audio device closed")

	return d.player.Close()
}
