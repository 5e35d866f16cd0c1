package extract_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/extract"
)

var _ = Describe("Web", func() {
	var (
		server *httptest.Server
		status int
		page   string
		agent  string
		web    *extract.Web
	)

	BeforeEach(func() {
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(page))
		}))
		web = extract.NewWeb(extract.WebConfig{})
	})

	AfterEach(func() {
		server.Close()
	})

	It("joins paragraph text with spaces", func() {
		page = `<html><body><h1>Title</h1><p>Revenue grew.</p><div>nav</div><p>Margins <b>fell</b>.</p></body></html>`

		text, err := web.ReadableText(context.Background(), server.URL)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Revenue grew. Margins fell."))
		Expect(agent).To(Equal(extract.DefaultUserAgent))
	})

	It("returns empty text for pages without paragraphs", func() {
		page = `<html><body><div>only divs</div><p>  </p></body></html>`

		text, err := web.ReadableText(context.Background(), server.URL)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})

	It("treats error statuses as fetch failures", func() {
		status = http.StatusNotFound
		page = `<p>not found</p>`

		_, err := web.ReadableText(context.Background(), server.URL)
		Expect(err).To(MatchError(extract.ErrFetch))
	})

	It("reports unreachable hosts as fetch failures", func() {
		_, err := web.ReadableText(context.Background(), "http://127.0.0.1:1/unreachable")
		Expect(err).To(MatchError(extract.ErrFetch))
	})
})

var _ = Describe("PDFText", func() {
	It("rejects data that is not a PDF", func() {
		data := []byte("definitely not a pdf")
		_, err := extract.PDFText(context.Background(), bytes.NewReader(data), int64(len(data)))
		Expect(err).To(MatchError(extract.ErrPDF))
	})
})
