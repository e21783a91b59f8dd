package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestToken(t *testing.T) {
	keyring.MockInit()

	Convey("Given an empty keyring", t, func() {
		So(DeleteToken(), ShouldBeNil)

		Convey("Reading reports a missing token", func() {
			_, err := GetToken()
			So(err, ShouldEqual, ErrNoToken)
		})

		Convey("A stored token can be read back", func() {
			So(SetToken("  secret\n"), ShouldBeNil)
			token, err := GetToken()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "secret")

			Convey("And deleted", func() {
				So(DeleteToken(), ShouldBeNil)
				_, err := GetToken()
				So(err, ShouldEqual, ErrNoToken)
			})
		})

		Convey("Blank tokens are refused", func() {
			So(SetToken(" "), ShouldNotBeNil)
		})
	})
}
