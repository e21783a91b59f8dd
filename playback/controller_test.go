package playback

import (
	"errors"
	"math"
	"testing"

	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/engine/enginetest"
	"github.com/playdeck/playdeck/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
)

// readyController returns a controller whose source is loaded, ready and Paused.
func readyController(duration float64) (*Controller, *enginetest.Fake) {
	fake := enginetest.New()
	fake.Policy = engine.AutoplayBlock
	c := NewController(fake, log.WithFields(nil))
	bridge := NewBridge(c, Host{}, log.WithFields(nil))
	bridge.Attach(fake, nil)

	_ = c.Load("a.mp4", engine.Meta{})
	fake.Emit(engine.Event{Kind: engine.Ready, Duration: duration})
	fake.Reset()
	return c, fake
}

func TestControllerVolume(t *testing.T) {
	Convey("Given a loaded controller", t, func() {
		c, fake := readyController(120)

		Convey("setVolume(v) mutes exactly when v is 0", func() {
			for _, v := range []float64{0, 0.01, 0.25, 0.5, 0.99, 1} {
				c.SetVolume(v)
				So(c.State().Volume, ShouldEqual, v)
				So(c.State().Muted, ShouldEqual, v == 0)
				So(fake.Muted, ShouldEqual, v == 0)
			}
		})

		Convey("setVolume clamps out-of-range values", func() {
			c.SetVolume(3)
			So(c.State().Volume, ShouldEqual, 1.0)
			c.SetVolume(-1)
			So(c.State().Volume, ShouldEqual, 0.0)
			So(c.State().Muted, ShouldBeTrue)
		})

		Convey("toggleMute twice restores muted", func() {
			for _, start := range []float64{0, 0.4} {
				c.SetVolume(start)
				before := c.State().Muted
				c.ToggleMute()
				So(c.State().Muted, ShouldNotEqual, before)
				c.ToggleMute()
				So(c.State().Muted, ShouldEqual, before)
			}
		})

		Convey("Unmuting restores the default volume", func() {
			So(c.State().Muted, ShouldBeTrue)
			c.ToggleMute()
			So(c.State().Muted, ShouldBeFalse)
			So(c.State().Volume, ShouldEqual, DefaultVolume)
			So(fake.Commands(), ShouldResemble, []string{"mute false", "volume 1.00"})
		})

		Convey("Muting silences", func() {
			c.SetVolume(0.6)
			c.ToggleMute()
			So(c.State().Volume, ShouldEqual, 0.0)
			So(c.State().Muted, ShouldBeTrue)
		})
	})
}

func TestControllerSeek(t *testing.T) {
	Convey("Given a controller with a 120s source", t, func() {
		c, fake := readyController(120)

		Convey("seek(t) lands on clamp(t, 0, duration)", func() {
			for _, tc := range []struct{ in, want float64 }{
				{-5, 0}, {0, 0}, {42.5, 42.5}, {120, 120}, {9999, 120},
			} {
				c.Seek(tc.in)
				So(c.State().CurrentTime, ShouldEqual, tc.want)
				So(fake.Position, ShouldEqual, tc.want)
			}
		})

		Convey("CurrentTime changes before the engine reports progress", func() {
			var seen []float64
			c.Observe(func(_, next PlaybackState) { seen = append(seen, next.CurrentTime) })
			c.Seek(30)
			So(seen, ShouldResemble, []float64{30})
		})

		Convey("SeekBy is relative", func() {
			c.Seek(10)
			c.SeekBy(-15)
			So(c.State().CurrentTime, ShouldEqual, 0.0)
			c.SeekBy(200)
			So(c.State().CurrentTime, ShouldEqual, 120.0)
		})
	})

	Convey("Given a controller with an unknown duration", t, func() {
		c, _ := readyController(math.NaN())

		Convey("Every seek clamps to zero", func() {
			c.Seek(50)
			So(c.State().CurrentTime, ShouldEqual, 0.0)
			So(c.State().DurationKnown(), ShouldBeFalse)
		})
	})
}

func TestControllerLoad(t *testing.T) {
	Convey("Given a previous session left audio on", t, func() {
		c, fake := readyController(60)
		c.ToggleMute()
		So(c.State().Muted, ShouldBeFalse)

		Convey("Loading again starts muted at volume 0", func() {
			fake.Reset()
			So(c.Load("b.mp4", engine.Meta{}), ShouldBeNil)

			s := c.State()
			So(s.Status, ShouldEqual, Loading)
			So(s.Muted, ShouldBeTrue)
			So(s.Volume, ShouldEqual, 0.0)
			So(math.IsNaN(s.Duration), ShouldBeTrue)
			So(s.Buffering, ShouldBeTrue)
			So(fake.Commands(), ShouldResemble, []string{"mute true", "volume 0.00", "load b.mp4"})
		})

		Convey("The prompt dismissal does not carry over", func() {
			So(c.Load("b.mp4", engine.Meta{}), ShouldBeNil)
			So(c.dismissed, ShouldBeFalse)
		})
	})

	Convey("Given an engine whose process has not started", t, func() {
		fake := enginetest.New()
		logger, hook := test.NewNullLogger()
		c := NewController(fake, logrus.NewEntry(logger))

		Convey("Silencing it before the first load is not a warning", func() {
			fake.AudioErr = engine.ErrNotRunning
			So(c.Load("a.mp4", engine.Meta{}), ShouldBeNil)
			So(fake.Commands(), ShouldResemble, []string{"mute true", "volume 0.00", "load a.mp4"})
			So(hook.AllEntries(), ShouldHaveLength, 1)
			So(hook.LastEntry().Level, ShouldEqual, logrus.InfoLevel)
		})

		Convey("Other audio failures are still reported", func() {
			fake.AudioErr = errors.New("ipc down")
			So(c.Load("a.mp4", engine.Meta{}), ShouldBeNil)
			warnings := 0
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel {
					warnings++
				}
			}
			So(warnings, ShouldEqual, 2)
		})
	})

	Convey("Given an engine that cannot load", t, func() {
		fake := enginetest.New()
		fake.LoadErr = errors.New("404")
		c := NewController(fake, log.WithFields(nil))

		err := c.Load("missing.mp4", engine.Meta{})

		Convey("The controller is Errored with a MediaLoadError", func() {
			So(errors.Is(err, ErrMediaLoad), ShouldBeTrue)
			So(c.State().Status, ShouldEqual, Errored)
			So(errors.Is(c.State().Err, ErrMediaLoad), ShouldBeTrue)
		})

		Convey("No further engine commands are issued", func() {
			fake.Reset()
			c.Play()
			c.Seek(3)
			c.SetVolume(1)
			c.ToggleMute()
			c.Pause()
			So(fake.Commands(), ShouldBeEmpty)
		})
	})
}

func TestControllerPlayPause(t *testing.T) {
	Convey("Given a paused controller", t, func() {
		c, fake := readyController(120)
		So(c.State().Status, ShouldEqual, Paused)

		Convey("Pause is a no-op", func() {
			c.Pause()
			So(fake.Commands(), ShouldBeEmpty)
		})

		Convey("A user play is a gesture and succeeds", func() {
			c.Play()
			So(fake.Commands(), ShouldResemble, []string{"play gesture=true"})
			So(c.State().Status, ShouldEqual, Playing)

			Convey("TogglePlay then pauses", func() {
				c.TogglePlay()
				So(c.State().Status, ShouldEqual, Paused)
			})
		})

		Convey("A failing play leaves the state alone", func() {
			fake.PlayErr = errors.New("ipc down")
			c.Play()
			So(c.State().Status, ShouldEqual, Paused)
			So(c.State().Err, ShouldBeNil)
		})

		Convey("Playing after the end restarts from zero", func() {
			c.Play()
			fake.Emit(engine.Event{Kind: engine.Ended})
			So(c.State().CurrentTime, ShouldEqual, 120.0)

			fake.Reset()
			c.Play()
			So(fake.Commands(), ShouldResemble, []string{"seek 0.00", "play gesture=true"})
			So(c.State().Status, ShouldEqual, Playing)
		})

		Convey("Seeking after the end resumes from the new position", func() {
			c.Play()
			fake.Emit(engine.Event{Kind: engine.Ended})

			c.Seek(50)
			So(c.State().Status, ShouldEqual, Paused)
			So(c.State().CurrentTime, ShouldEqual, 50.0)

			fake.Reset()
			c.Play()
			So(fake.Commands(), ShouldResemble, []string{"play gesture=true"})
			So(c.State().Status, ShouldEqual, Playing)
			So(c.State().CurrentTime, ShouldEqual, 50.0)
		})

		Convey("Seeking to the end keeps the source finished", func() {
			c.Play()
			fake.Emit(engine.Event{Kind: engine.Ended})

			c.Seek(500)
			So(c.State().Status, ShouldEqual, Ended)
		})
	})
}

func TestObserve(t *testing.T) {
	Convey("Given an observer", t, func() {
		c := NewController(enginetest.New(), log.WithFields(nil))
		calls := 0
		cancel := c.Observe(func(_, _ PlaybackState) { calls++ })

		Convey("It is told about changes only", func() {
			_ = c.Load("a.mp4", engine.Meta{})
			So(calls, ShouldEqual, 1)
			c.buffering()
			So(calls, ShouldEqual, 1)
		})

		Convey("It stops after cancel", func() {
			cancel()
			cancel()
			_ = c.Load("a.mp4", engine.Meta{})
			So(calls, ShouldEqual, 0)
		})
	})
}
