package companycmder_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/cmd/jigyasa/cmdutil/cmdtest"
	companycmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/company"
	"github.com/papercomputeco/jigyasa/pkg/finance"
	"github.com/papercomputeco/jigyasa/pkg/market"
)

type stubMarket struct {
	data *finance.CompanyData
}

func (s *stubMarket) Company(_ context.Context, symbol string) (*finance.CompanyData, error) {
	if s.data == nil || s.data.Symbol != symbol {
		return nil, market.ErrNotFound
	}
	return s.data, nil
}

func f64(v float64) *float64 { return &v }

var _ = Describe("Company command", func() {
	var (
		server *cmdtest.Server
		acme   *finance.CompanyData
	)

	run := func(args ...string) (string, error) {
		return cmdtest.Execute(server.URL, companycmder.NewCompanyCmd(), append([]string{"company"}, args...)...)
	}

	BeforeEach(func() {
		acme = &finance.CompanyData{
			Symbol:       "ACME",
			CompanyName:  "Acme Corp",
			Sector:       "Industrials",
			TotalRevenue: f64(1000),
			NetIncome:    f64(100),
			CurrentPrice: f64(42),
		}

		var err error
		server, err = cmdtest.NewServer(&stubMarket{data: acme}, "Acme looks fairly valued.")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(server.Close)
	})

	It("has fetch and analyze subcommands", func() {
		names := []string{}
		for _, sub := range companycmder.NewCompanyCmd().Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ConsistOf("fetch", "analyze"))
	})

	Describe("fetch", func() {
		It("prints company fields", func() {
			out, err := run("fetch", "ACME")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Acme Corp"))
			Expect(out).To(ContainSubstring("Industrials"))
		})

		It("prints JSON", func() {
			out, err := run("fetch", "ACME", "--json")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`"company_name": "Acme Corp"`))
		})

		It("reports unknown symbols", func() {
			_, err := run("fetch", "NOPE")
			Expect(err).To(MatchError(ContainSubstring("404")))
		})
	})

	Describe("analyze", func() {
		It("fetches and analyzes a symbol", func() {
			out, err := run("analyze", "ACME")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("profit_margin"))
			Expect(out).To(ContainSubstring("10"))
			Expect(out).To(ContainSubstring("fairly valued"))
		})

		It("analyzes company data from a file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "acme.json")
			data, err := json.Marshal(acme)
			Expect(err).NotTo(HaveOccurred())
			Expect(os.WriteFile(path, data, 0o600)).To(Succeed())

			out, err := run("analyze", "--file", path)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Acme Corp"))
			Expect(server.Generator.LastPrompt()).To(ContainSubstring("Acme Corp"))
		})

		It("requires exactly one of a symbol or a file", func() {
			_, err := run("analyze")
			Expect(err).To(MatchError(ContainSubstring("either a symbol or --file")))

			_, err = run("analyze", "ACME", "--file", "acme.json")
			Expect(err).To(MatchError(ContainSubstring("either a symbol or --file")))
		})

		It("rejects malformed files", func() {
			path := filepath.Join(GinkgoT().TempDir(), "bad.json")
			Expect(os.WriteFile(path, []byte("{"), 0o600)).To(Succeed())

			_, err := run("analyze", "--file", path)
			Expect(err).To(MatchError(ContainSubstring("parsing company data")))
		})
	})
})
