package jigyasacmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	jigyasacmder "github.com/papercomputeco/jigyasa/cmd/jigyasa"
)

var _ = Describe("NewJigyasaCmd", func() {
	It("registers the global flags", func() {
		cmd := jigyasacmder.NewJigyasaCmd()

		debug := cmd.PersistentFlags().Lookup("debug")
		Expect(debug).NotTo(BeNil())
		Expect(debug.Shorthand).To(Equal("d"))
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
	})

	It("wires every subcommand", func() {
		cmd := jigyasacmder.NewJigyasaCmd()

		names := []string{}
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements(
			"serve", "init", "config", "auth", "note",
			"ask", "check", "verify", "extract", "guide", "summarize", "xray",
			"calc", "company", "version",
		))
	})

	It("finds nested calculator commands", func() {
		cmd := jigyasacmder.NewJigyasaCmd()

		found, _, err := cmd.Find([]string{"calc", "npv"})
		Expect(err).NotTo(HaveOccurred())
		Expect(found.Name()).To(Equal("npv"))
	})
})
