package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHub(t *testing.T) {
	Convey("Given a hub with two subscribers", t, func() {
		var hub Hub
		var got []string

		cancelA := hub.Subscribe(func(e Event) { got = append(got, "a:"+e.Kind.String()) })
		hub.Subscribe(func(e Event) { got = append(got, "b:"+e.Kind.String()) })

		Convey("Events reach subscribers in subscription order", func() {
			hub.Emit(Event{Kind: Ready})
			hub.Emit(Event{Kind: Started})
			So(got, ShouldResemble, []string{"a:ready", "b:ready", "a:play", "b:play"})
		})

		Convey("Cancelled subscribers stop receiving and cancel is idempotent", func() {
			cancelA()
			cancelA()
			hub.Emit(Event{Kind: Ended})
			So(got, ShouldResemble, []string{"b:ended"})
			So(hub.Len(), ShouldEqual, 1)
		})
	})
}

func TestLease(t *testing.T) {
	Convey("Given a lease", t, func() {
		var lease Lease
		release, err := lease.Acquire()
		So(err, ShouldBeNil)

		Convey("A second acquisition fails while held", func() {
			_, err := lease.Acquire()
			So(err, ShouldEqual, ErrEngineBusy)
		})

		Convey("It can be taken again after release", func() {
			release()
			release()
			So(lease.Held(), ShouldBeFalse)
			_, err := lease.Acquire()
			So(err, ShouldBeNil)
		})
	})
}
