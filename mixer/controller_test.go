// SPDX-License-Identifier: EPL-2.0

package mixer_test

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/aCallin/retro-rain/catalog"
	"github.com/aCallin/retro-rain/internal/enginetest"
	"github.com/aCallin/retro-rain/mixer"
)

// events collects notifications as "id:mode" and "master:mode" strings.
type events struct {
	log []string
}

func (e *events) notifier() mixer.NotifierFuncs {
	return mixer.NotifierFuncs{
		Channel: func(id string, m mixer.Mode) { e.log = append(e.log, id+":"+m.String()) },
		Master:  func(m mixer.Mode) { e.log = append(e.log, "master:"+m.String()) },
	}
}

func (e *events) take() []string {
	out := e.log
	e.log = nil
	return out
}

type fixture struct {
	t   *testing.T
	eng *enginetest.Recorder
	ctl *mixer.Controller
	ev  *events
}

func newFixture(t *testing.T, ids ...string) *fixture {
	t.Helper()

	if len(ids) == 0 {
		ids = []string{"rain.wav", "wind.wav", "fire.wav"}
	}
	cat := catalog.New()
	for _, id := range ids {
		if err := cat.Add(catalog.Clip{ID: id, Format: "wav"}); err != nil {
			t.Fatal(err)
		}
	}

	f := &fixture{t: t, eng: enginetest.NewRecorder(), ev: &events{}}
	f.ctl = mixer.NewController(cat, f.eng, mixer.WithNotifier(f.ev.notifier()))

	return f
}

// do runs an intent that must succeed and checks the controller stays
// consistent.
func (f *fixture) do(name string, err error) {
	f.t.Helper()

	if err != nil {
		f.t.Fatalf("%s: unexpected error %v", name, err)
	}
	f.check(name)
}

func (f *fixture) check(name string) {
	f.t.Helper()

	if !f.ctl.Consistent() {
		f.t.Fatalf("%s: controller inconsistent: %+v", name, f.ctl.State())
	}
}

func (f *fixture) wantActive(want ...string) {
	f.t.Helper()

	if got := f.ctl.State().Active; !slices.Equal(got, want) {
		f.t.Errorf("Active = %v, want %v", got, want)
	}
}

func (f *fixture) wantMaster(want mixer.Mode) {
	f.t.Helper()

	if got := f.ctl.State().Master; got != want {
		f.t.Errorf("Master = %v, want %v", got, want)
	}
}

func (f *fixture) wantGain(clip string, want float64) {
	f.t.Helper()

	v, ok := f.eng.Sounding(clip)
	if !ok {
		f.t.Errorf("%s is not sounding", clip)
		return
	}
	if math.Abs(v.Gain-want) > 1e-9 {
		f.t.Errorf("%s gain = %v dB, want %v", clip, v.Gain, want)
	}
}

func (f *fixture) wantSilent(clip string) {
	f.t.Helper()

	if _, ok := f.eng.Sounding(clip); ok {
		f.t.Errorf("%s is still sounding", clip)
	}
}

func TestController_Defaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	st := f.ctl.State()

	if st.Master != mixer.Stopped || st.MasterVolume != 1.0 || len(st.Active) != 0 {
		t.Errorf("State() = %+v, want stopped, volume 1, no active channels", st)
	}
	if ch := f.ctl.Channel("rain.wav"); ch.Mode != mixer.Stopped || ch.Volume != 1.0 {
		t.Errorf("Channel() = %+v, want stopped at volume 1", ch)
	}
	f.check("defaults")
}

func TestController_StartTwoChannels(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.wantActive("rain.wav")
	f.wantMaster(mixer.Playing)
	if ev := f.ev.take(); !slices.Equal(ev, []string{"rain.wav:playing", "master:playing"}) {
		t.Errorf("notifications = %v", ev)
	}

	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.wantActive("rain.wav", "wind.wav")
	f.wantMaster(mixer.Playing)
	if ev := f.ev.take(); !slices.Equal(ev, []string{"wind.wav:playing"}) {
		t.Errorf("notifications = %v, want only wind.wav:playing", ev)
	}

	f.do("master volume", f.ctl.SetMasterVolume(0.5))
	f.wantGain("rain.wav", -15)
	f.wantGain("wind.wav", -15)
	if ev := f.ev.take(); len(ev) != 0 {
		t.Errorf("volume change notified %v", ev)
	}
}

func TestController_ToggleOffLastChannelStopsMaster(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.ev.take()

	f.do("toggle rain off", f.ctl.ToggleChannel("rain.wav"))
	f.wantActive("wind.wav")
	f.wantMaster(mixer.Playing)
	f.wantSilent("rain.wav")

	f.do("toggle wind off", f.ctl.ToggleChannel("wind.wav"))
	f.wantActive()
	f.wantMaster(mixer.Stopped)
	if n := len(f.eng.OpenHandles()); n != 0 {
		t.Errorf("%d engine handles left open", n)
	}

	want := []string{"rain.wav:stopped", "wind.wav:stopped", "master:stopped"}
	if ev := f.ev.take(); !slices.Equal(ev, want) {
		t.Errorf("notifications = %v, want %v", ev, want)
	}
}

func TestController_MasterPauseAndResume(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.do("rain volume", f.ctl.SetChannelVolume("rain.wav", 0.5))
	f.ev.take()

	f.do("pause", f.ctl.ToggleMaster())
	f.wantMaster(mixer.Stopped)
	f.wantActive("rain.wav", "wind.wav")
	f.wantSilent("rain.wav")
	f.wantSilent("wind.wav")
	if n := len(f.eng.OpenHandles()); n != 0 {
		t.Errorf("%d engine handles open while paused", n)
	}
	want := []string{"rain.wav:stopped", "wind.wav:stopped", "master:stopped"}
	if ev := f.ev.take(); !slices.Equal(ev, want) {
		t.Errorf("pause notifications = %v, want %v", ev, want)
	}

	// volume changes while paused apply on resume
	f.do("master volume", f.ctl.SetMasterVolume(0.5))
	opens := f.eng.Count("open")

	f.do("resume", f.ctl.ToggleMaster())
	f.wantMaster(mixer.Playing)
	f.wantActive("rain.wav", "wind.wav")
	if got := f.eng.Count("open") - opens; got != 2 {
		t.Errorf("resume opened %d clips, want 2", got)
	}
	f.wantGain("rain.wav", mixer.GainDB(0.25, enginetest.DefaultMinGain))
	f.wantGain("wind.wav", -15)
	want = []string{"rain.wav:playing", "wind.wav:playing", "master:playing"}
	if ev := f.ev.take(); !slices.Equal(ev, want) {
		t.Errorf("resume notifications = %v, want %v", ev, want)
	}
}

func TestController_ToggleAfterPauseStartsNewSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("pause", f.ctl.ToggleMaster())
	f.ev.take()

	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.wantActive("wind.wav")
	f.wantMaster(mixer.Playing)
	f.wantSilent("rain.wav")
	f.wantGain("wind.wav", 0)

	want := []string{"wind.wav:playing", "master:playing"}
	if ev := f.ev.take(); !slices.Equal(ev, want) {
		t.Errorf("notifications = %v, want %v", ev, want)
	}

	// the dropped selection does not come back on the next pause cycle
	f.do("pause", f.ctl.ToggleMaster())
	f.do("resume", f.ctl.ToggleMaster())
	f.wantActive("wind.wav")
	f.wantSilent("rain.wav")
}

func TestController_TogglePausedChannelStartsItAlone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.do("pause", f.ctl.ToggleMaster())

	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.wantActive("rain.wav")
	f.wantMaster(mixer.Playing)
	f.wantGain("rain.wav", 0)
	f.wantSilent("wind.wav")
}

func TestController_ToggleMasterWithNothingSelected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.do("toggle master", f.ctl.ToggleMaster())
	f.wantMaster(mixer.Stopped)
	if len(f.eng.Calls()) != 0 || len(f.ev.take()) != 0 {
		t.Error("ToggleMaster() with no selection had side effects")
	}
}

func TestController_InvalidVolumeLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("rain volume", f.ctl.SetChannelVolume("rain.wav", 0.7))
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	gains := f.eng.Count("gain")

	for _, v := range []float64{1.5, -0.1, math.NaN()} {
		if err := f.ctl.SetChannelVolume("rain.wav", v); !errors.Is(err, mixer.ErrInvalidArgument) {
			t.Errorf("SetChannelVolume(%v) error = %v, want ErrInvalidArgument", v, err)
		}
		if err := f.ctl.SetMasterVolume(v); !errors.Is(err, mixer.ErrInvalidArgument) {
			t.Errorf("SetMasterVolume(%v) error = %v, want ErrInvalidArgument", v, err)
		}
	}

	if got := f.ctl.Channel("rain.wav").Volume; got != 0.7 {
		t.Errorf("rain volume = %v, want 0.7", got)
	}
	if got := f.ctl.State().MasterVolume; got != 1.0 {
		t.Errorf("master volume = %v, want 1", got)
	}
	if f.eng.Count("gain") != gains {
		t.Error("rejected volume reached the engine")
	}
	f.check("after rejected volumes")
}

func TestController_VolumeOfUnselectedChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.do("wind volume", f.ctl.SetChannelVolume("wind.wav", 0.5))
	if len(f.eng.Calls()) != 0 {
		t.Error("volume of a stopped channel reached the engine")
	}
	if st := f.ctl.Channel("wind.wav"); st.Volume != 0.5 || st.Mode != mixer.Stopped {
		t.Errorf("Channel() = %+v, want stopped at 0.5", st)
	}

	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.wantGain("wind.wav", -15)
}

func TestController_UnknownClip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if err := f.ctl.ToggleChannel("thunder.wav"); !errors.Is(err, mixer.ErrUnknownClip) {
		t.Errorf("ToggleChannel() error = %v, want ErrUnknownClip", err)
	}
	if err := f.ctl.SetChannelVolume("thunder.wav", 0.5); !errors.Is(err, mixer.ErrUnknownClip) {
		t.Errorf("SetChannelVolume() error = %v, want ErrUnknownClip", err)
	}
	if len(f.eng.Calls()) != 0 {
		t.Error("unknown clip reached the engine")
	}
	f.check("unknown clip")
}

func TestController_OpenFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.eng.OpenErr["wind.wav"] = mixer.ErrUnsupportedFormat

	err := f.ctl.ToggleChannel("wind.wav")
	if !errors.Is(err, mixer.ErrUnsupportedFormat) {
		t.Fatalf("ToggleChannel() error = %v, want ErrUnsupportedFormat", err)
	}
	f.check("failed open")
	f.wantActive()
	f.wantMaster(mixer.Stopped)
	if ev := f.ev.take(); len(ev) != 0 {
		t.Errorf("failed open notified %v", ev)
	}

	// a failure does not disturb channels already playing
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	if err := f.ctl.ToggleChannel("wind.wav"); err == nil {
		t.Fatal("ToggleChannel() succeeded with open failure injected")
	}
	f.check("failed open while playing")
	f.wantActive("rain.wav")
	f.wantMaster(mixer.Playing)
}

func TestController_ResumeFailureDropsChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("toggle wind", f.ctl.ToggleChannel("wind.wav"))
	f.do("pause", f.ctl.ToggleMaster())
	f.ev.take()

	f.eng.OpenErr["rain.wav"] = mixer.ErrEngineUnavailable
	err := f.ctl.ToggleMaster()
	if !errors.Is(err, mixer.ErrEngineUnavailable) {
		t.Fatalf("ToggleMaster() error = %v, want ErrEngineUnavailable", err)
	}
	f.check("partial resume")
	f.wantActive("wind.wav")
	f.wantMaster(mixer.Playing)

	want := []string{"wind.wav:playing", "master:playing"}
	if ev := f.ev.take(); !slices.Equal(ev, want) {
		t.Errorf("notifications = %v, want %v", ev, want)
	}
}

func TestController_ResumeFailureOfEveryChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("pause", f.ctl.ToggleMaster())
	f.ev.take()

	f.eng.OpenErr["rain.wav"] = mixer.ErrEngineUnavailable
	if err := f.ctl.ToggleMaster(); err == nil {
		t.Fatal("ToggleMaster() error = nil, want failure")
	}
	f.check("failed resume")
	f.wantActive()
	f.wantMaster(mixer.Stopped)
	if ev := f.ev.take(); len(ev) != 0 {
		t.Errorf("failed resume notified %v", ev)
	}
}

func TestController_GainFailureKeepsPlaying(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.eng.GainErr = errors.New("gain control unsupported")

	f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
	f.do("master volume", f.ctl.SetMasterVolume(0.2))
	if _, ok := f.eng.Sounding("rain.wav"); !ok {
		t.Error("gain failure stopped playback")
	}
	f.wantMaster(mixer.Playing)
}

// TestController_GainCurve checks every volume × master volume pair on a
// coarse grid against the expected curve.
func TestController_GainCurve(t *testing.T) {
	t.Parallel()

	steps := []float64{0, 0.1, 0.25, 0.5, 0.8, 1}

	for _, v := range steps {
		for _, m := range steps {
			t.Run(fmt.Sprintf("%v×%v", v, m), func(t *testing.T) {
				t.Parallel()

				f := newFixture(t)
				f.do("toggle rain", f.ctl.ToggleChannel("rain.wav"))
				f.do("channel volume", f.ctl.SetChannelVolume("rain.wav", v))
				f.do("master volume", f.ctl.SetMasterVolume(m))

				want := enginetest.DefaultMinGain
				if e := v * m; e > 0 {
					want = -30 + 30*e
				}
				f.wantGain("rain.wav", want)
			})
		}
	}
}

func TestController_ConsistentAcrossSequence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	intents := []struct {
		name string
		run  func() error
	}{
		{"toggle rain", func() error { return f.ctl.ToggleChannel("rain.wav") }},
		{"toggle fire", func() error { return f.ctl.ToggleChannel("fire.wav") }},
		{"pause", f.ctl.ToggleMaster},
		{"resume", f.ctl.ToggleMaster},
		{"toggle rain off", func() error { return f.ctl.ToggleChannel("rain.wav") }},
		{"pause", f.ctl.ToggleMaster},
		{"toggle wind", func() error { return f.ctl.ToggleChannel("wind.wav") }},
		{"toggle wind off", func() error { return f.ctl.ToggleChannel("wind.wav") }},
		{"toggle master", f.ctl.ToggleMaster},
		{"toggle fire", func() error { return f.ctl.ToggleChannel("fire.wav") }},
	}

	for _, in := range intents {
		f.do(in.name, in.run())
	}

	f.wantActive("fire.wav")
	f.wantMaster(mixer.Playing)
	if n := len(f.eng.OpenHandles()); n != 1 {
		t.Errorf("%d engine handles open, want 1", n)
	}
}
