package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		result := Truncate("this is a long string", 10)
		Expect(result).To(Equal("this is a ..."))
	})
})

var _ = Describe("Head", func() {
	It("returns the string unchanged when shorter than n", func() {
		Expect(Head("short", 10)).To(Equal("short"))
	})

	It("cuts to the first n runes", func() {
		Expect(Head("abcdef", 3)).To(Equal("abc"))
	})

	It("counts runes rather than bytes", func() {
		Expect(Head("₹₹₹₹", 2)).To(Equal("₹₹"))
	})

	It("returns empty for non-positive n", func() {
		Expect(Head("abc", 0)).To(BeEmpty())
	})
})

var _ = Describe("UserAgent", func() {
	It("carries the build version", func() {
		Expect(UserAgent()).To(ContainSubstring("jigyasa/" + Version))
	})
})
