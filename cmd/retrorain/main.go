// SPDX-License-Identifier: EPL-2.0

// Command retrorain mixes looping ambient clips from a directory.
//
// It plays through the default audio device and reads commands from
// standard input:
//
//	list                   show every clip with its state and volume
//	toggle <id>            start or stop a clip
//	master                 pause or resume everything selected
//	volume <id> <0..1>     set a clip's volume
//	master-volume <0..1>   set the master volume
//	quit                   exit
//
// With -render the same commands are read until end of input and the
// resulting mix is written to a WAV file instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	retrorain "github.com/aCallin/retro-rain"
	"github.com/aCallin/retro-rain/catalog"
	"github.com/aCallin/retro-rain/internal/config"
	"github.com/aCallin/retro-rain/mixer"
	"github.com/aCallin/retro-rain/playback"
	"github.com/aCallin/retro-rain/playback/otodevice"
)

const defaultConfigPath = "retrorain.toml"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "retrorain:", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	renderPath string
	duration   time.Duration
	cfg        config.Config
}

// parseOptions loads the config file and applies the flags that were set
// on the command line over it.
func parseOptions(args []string, stderr io.Writer) (options, error) {
	def := config.Default()

	fs := flag.NewFlagSet("retrorain", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts     options
		dir      = fs.String("dir", def.AudioDir, "directory of clips")
		rate     = fs.Int("rate", def.SampleRate, "output sample rate")
		channels = fs.Int("channels", def.Channels, "output channels (1 or 2)")
		buffer   = fs.Duration("buffer", def.Buffer.Duration, "device buffer")
		volume   = fs.Float64("volume", def.MasterVolume, "initial master volume (0..1)")
		level    = def.LogLevel
	)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "TOML configuration file")
	fs.StringVar(&opts.renderPath, "render", "", "write the mix to this WAV file instead of playing it")
	fs.DurationVar(&opts.duration, "duration", 10*time.Second, "length of the rendered mix")
	fs.TextVar(&level, "log-level", def.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(opts.configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && !set["config"]:
		cfg = def
	case err != nil:
		return options{}, err
	}

	if set["dir"] {
		cfg.AudioDir = *dir
	}
	if set["rate"] {
		cfg.SampleRate = *rate
	}
	if set["channels"] {
		cfg.Channels = *channels
	}
	if set["buffer"] {
		cfg.Buffer.Duration = *buffer
	}
	if set["volume"] {
		cfg.MasterVolume = *volume
	}
	if set["log-level"] {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	if opts.renderPath != "" && opts.duration <= 0 {
		return options{}, fmt.Errorf("%w: -duration must be positive", config.ErrInvalid)
	}

	opts.cfg = cfg
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	cfg := opts.cfg

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	reg := retrorain.NewRegistry()
	extensions, skipped := decodable(cfg.Extensions, reg.Formats())
	if len(skipped) > 0 {
		logger.Warn("no decoder for extensions", "extensions", skipped)
	}
	if len(extensions) == 0 {
		return fmt.Errorf("%w: none of %v can be decoded", config.ErrInvalid, cfg.Extensions)
	}

	cat := catalog.New()
	n, err := cat.LoadDir(cfg.AudioDir, extensions)
	if err != nil {
		return fmt.Errorf("loading clips: %w", err)
	}
	logger.Info("catalog loaded", "dir", cfg.AudioDir, "clips", n)

	eng, err := playback.NewEngine(reg, cfg.SampleRate, cfg.Channels, playback.WithLogger(logger))
	if err != nil {
		return err
	}
	defer eng.Shutdown()

	ctl := mixer.NewController(cat, eng,
		mixer.WithNotifier(printNotifier(stdout)),
		mixer.WithLogger(logger),
	)
	if err := ctl.SetMasterVolume(cfg.MasterVolume); err != nil {
		return err
	}

	s := &session{ctl: ctl, cat: cat, out: stdout}

	if opts.renderPath != "" {
		if err := s.run(stdin); err != nil {
			return err
		}
		if err := render(eng, opts.renderPath, opts.duration); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "wrote:", opts.renderPath)
		return nil
	}

	dev, err := otodevice.New(eng, cfg.SampleRate, cfg.Channels, cfg.Buffer.Duration, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	s.list()
	if err := s.run(stdin); err != nil {
		return err
	}

	return dev.Err()
}

// decodable splits extensions into those naming a registered format and
// those that do not.
func decodable(extensions, formats []string) (keep, skipped []string) {
	for _, ext := range extensions {
		if slices.Contains(formats, strings.ToLower(strings.TrimPrefix(ext, "."))) {
			keep = append(keep, ext)
		} else {
			skipped = append(skipped, ext)
		}
	}
	return keep, skipped
}
