package playback

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func playingTimer() *VisibilityTimer {
	t := NewVisibilityTimer(DefaultHideDelay)
	t.StatusChanged(Playing)
	return t
}

func TestVisibilityTimer(t *testing.T) {
	Convey("A new timer shows the controls with nothing pending", t, func() {
		timer := NewVisibilityTimer(0)
		So(timer.Visible(), ShouldBeTrue)
		So(timer.Armed(), ShouldBeFalse)
		So(timer.delay, ShouldEqual, DefaultHideDelay)
	})

	Convey("Given a playing session", t, func() {
		timer := playingTimer()

		Convey("Entering Playing with the controls shown starts a countdown", func() {
			arm, ok := timer.Pending()
			So(ok, ShouldBeTrue)
			So(arm.Delay, ShouldEqual, 3000*time.Millisecond)

			_, ok = timer.Pending()
			So(ok, ShouldBeFalse)
		})

		Convey("Controls hide once the countdown elapses", func() {
			arm, _ := timer.Pending()
			timer.Fire(arm.Gen)
			So(timer.Visible(), ShouldBeFalse)
			So(timer.Armed(), ShouldBeFalse)
		})

		Convey("Pointer activity restarts the countdown", func() {
			first, _ := timer.Pending()
			timer.PointerMoved()
			second, ok := timer.Pending()
			So(ok, ShouldBeTrue)
			So(second.Gen, ShouldBeGreaterThan, first.Gen)

			Convey("The superseded countdown does nothing", func() {
				timer.Fire(first.Gen)
				So(timer.Visible(), ShouldBeTrue)
				So(timer.Armed(), ShouldBeTrue)

				timer.Fire(second.Gen)
				So(timer.Visible(), ShouldBeFalse)
			})
		})

		Convey("Pointer movement shows hidden controls", func() {
			arm, _ := timer.Pending()
			timer.Fire(arm.Gen)
			timer.PointerMoved()
			So(timer.Visible(), ShouldBeTrue)
			So(timer.Armed(), ShouldBeTrue)
		})

		Convey("The pointer leaving hides at once", func() {
			arm, _ := timer.Pending()
			timer.PointerLeft()
			So(timer.Visible(), ShouldBeFalse)
			So(timer.Armed(), ShouldBeFalse)

			timer.Fire(arm.Gen)
			So(timer.Visible(), ShouldBeFalse)
		})

		Convey("Pausing shows the controls and cancels the countdown", func() {
			arm, _ := timer.Pending()
			timer.StatusChanged(Paused)
			So(timer.Visible(), ShouldBeTrue)
			So(timer.Armed(), ShouldBeFalse)

			timer.Fire(arm.Gen)
			So(timer.Visible(), ShouldBeTrue)
		})

		Convey("Pausing after the controls hid shows them again", func() {
			arm, _ := timer.Pending()
			timer.Fire(arm.Gen)
			timer.StatusChanged(Paused)
			So(timer.Visible(), ShouldBeTrue)
		})

		Convey("Cancel is idempotent, even after firing", func() {
			arm, _ := timer.Pending()
			timer.Fire(arm.Gen)
			So(func() {
				timer.Cancel()
				timer.Cancel()
			}, ShouldNotPanic)
			So(timer.Armed(), ShouldBeFalse)
		})
	})

	Convey("Given a paused session", t, func() {
		timer := NewVisibilityTimer(DefaultHideDelay)
		timer.StatusChanged(Paused)

		Convey("Controls stay visible whatever the pointer does", func() {
			timer.PointerMoved()
			arm, ok := timer.Pending()
			So(ok, ShouldBeTrue)

			timer.Fire(arm.Gen)
			So(timer.Visible(), ShouldBeTrue)

			timer.PointerLeft()
			So(timer.Visible(), ShouldBeTrue)
		})
	})

	Convey("Ending or failing shows the controls", t, func() {
		for _, status := range []Status{Ended, Errored, Loading} {
			timer := playingTimer()
			arm, _ := timer.Pending()
			timer.Fire(arm.Gen)
			So(timer.Visible(), ShouldBeFalse)

			timer.StatusChanged(status)
			So(timer.Visible(), ShouldBeTrue)
		}
	})
}
