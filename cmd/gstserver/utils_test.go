package main

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIsValidNamespace(t *testing.T) {
	Convey("Test namespace label validation", t, func() {
		Convey("single label is valid", func() {
			So(isValidNamespace("acme"), ShouldEqual, true)
		})

		Convey("dotted labels are valid", func() {
			So(isValidNamespace("west.acme"), ShouldEqual, true)
		})

		Convey("empty string is invalid", func() {
			So(isValidNamespace(""), ShouldEqual, false)
		})

		Convey("leading dot is invalid", func() {
			So(isValidNamespace(".acme"), ShouldEqual, false)
		})

		Convey("label with invalid character is invalid", func() {
			So(isValidNamespace("ac me"), ShouldEqual, false)
		})
	})
}
