package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/cliui"
)

var _ = Describe("cliui", func() {
	Describe("FormatDuration", func() {
		It("uses milliseconds below a second", func() {
			Expect(cliui.FormatDuration(250 * time.Millisecond)).To(Equal("250ms"))
		})

		It("uses tenths of seconds above", func() {
			Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
		})
	})

	Describe("Mark", func() {
		It("distinguishes success from failure", func() {
			Expect(cliui.Mark(nil)).To(Equal(cliui.SuccessMark))
			Expect(cliui.Mark(errors.New("x"))).To(Equal(cliui.FailMark))
		})
	})

	Describe("Step", func() {
		It("returns the error from fn and prints the final line", func() {
			var buf bytes.Buffer
			boom := errors.New("boom")

			err := cliui.Step(&buf, "Asking", func() error { return boom })
			Expect(err).To(MatchError(boom))
			Expect(buf.String()).To(ContainSubstring("Asking"))
			Expect(buf.String()).To(HaveSuffix("\n"))
		})
	})

	Describe("Section", func() {
		It("prints the title and the body", func() {
			var buf bytes.Buffer
			cliui.Section(&buf, "Answer", "Revenue grew **12%**.")
			Expect(buf.String()).To(ContainSubstring("Answer"))
			Expect(buf.String()).To(ContainSubstring("12%"))
		})
	})

	Describe("KeyValue", func() {
		It("pads the key", func() {
			var buf bytes.Buffer
			cliui.KeyValue(&buf, "npv", 6, "243.43")
			Expect(buf.String()).To(ContainSubstring("npv"))
			Expect(buf.String()).To(ContainSubstring("243.43"))
		})
	})
})
