package chunker_test

import (
	"fmt"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/chunker"
)

// words builds a single-spaced document of n unique five character words.
func words(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%04d", prefix, i)
	}
	return strings.Join(parts, " ")
}

// overlapLen returns the length of the longest suffix of a that is also a
// prefix of b.
func overlapLen(a, b string) int {
	for l := min(len(a), len(b)); l > 0; l-- {
		if strings.HasSuffix(a, b[:l]) {
			return l
		}
	}
	return 0
}

var _ = Describe("Chunker", func() {
	var c *chunker.Chunker

	BeforeEach(func() {
		c = chunker.New()
	})

	It("uses the default size and overlap", func() {
		Expect(c.MaxSize()).To(Equal(chunker.DefaultMaxSize))
		Expect(c.Overlap()).To(Equal(chunker.DefaultOverlap))
	})

	Context("short documents", func() {
		It("yields exactly one fragment equal to the document", func() {
			doc := "  Revenue grew 10% in 2023.\n"
			frags := c.Split([]string{doc})

			Expect(frags).To(HaveLen(1))
			Expect(frags[0].Text).To(Equal(doc))
			Expect(frags[0].Source).To(Equal(0))
			Expect(frags[0].Seq).To(Equal(0))
		})

		It("skips empty documents", func() {
			frags := c.Split([]string{"", "margin expanded"})
			Expect(frags).To(HaveLen(1))
			Expect(frags[0].Source).To(Equal(1))
		})
	})

	Context("long documents", func() {
		It("never exceeds the maximum size", func() {
			frags := c.Split([]string{words("a", 800), words("b", 450)})

			Expect(len(frags)).To(BeNumerically(">", 2))
			for _, f := range frags {
				Expect(utf8.RuneCountInString(f.Text)).To(BeNumerically("<=", chunker.DefaultMaxSize))
			}
		})

		It("overlaps consecutive fragments by exactly the overlap when no separators exist", func() {
			doc := strings.Repeat("abcdefghij", 250)
			frags := c.Split([]string{doc})

			Expect(frags).To(HaveLen(3))
			Expect(frags[0].Text).To(Equal(doc[0:1000]))
			Expect(frags[1].Text).To(Equal(doc[900:1900]))
			Expect(frags[2].Text).To(Equal(doc[1800:2500]))
		})

		It("overlaps word-split fragments by at most the overlap", func() {
			frags := c.Split([]string{words("w", 600)})

			Expect(len(frags)).To(BeNumerically(">", 1))
			for i := 1; i < len(frags); i++ {
				l := overlapLen(frags[i-1].Text, frags[i].Text)
				Expect(l).To(BeNumerically(">", 0))
				Expect(l).To(BeNumerically("<=", chunker.DefaultOverlap))
			}
		})

		It("never crosses a document boundary", func() {
			docs := []string{words("a", 500), words("b", 500)}
			for _, f := range c.Split(docs) {
				Expect(docs[f.Source]).To(ContainSubstring(f.Text))
			}
		})

		It("numbers fragments within each source", func() {
			frags := c.Split([]string{words("a", 400), words("b", 400)})

			next := map[int]int{}
			for _, f := range frags {
				Expect(f.Seq).To(Equal(next[f.Source]))
				next[f.Source]++
			}
			Expect(next).To(HaveLen(2))
		})
	})

	Context("determinism", func() {
		It("produces identical output for identical input", func() {
			docs := []string{words("a", 700), "short note", words("c", 300)}
			Expect(c.Split(docs)).To(Equal(chunker.New().Split(docs)))
		})

		It("can be ranged over more than once", func() {
			seq := c.Fragments([]string{words("a", 500)})

			var first, second []chunker.Fragment
			for f := range seq {
				first = append(first, f)
			}
			for f := range seq {
				second = append(second, f)
			}
			Expect(second).To(Equal(first))
		})

		It("stops early when the consumer stops", func() {
			count := 0
			for range c.Fragments([]string{words("a", 800)}) {
				count++
				break
			}
			Expect(count).To(Equal(1))
		})
	})

	Describe("options", func() {
		It("honours a custom size and overlap", func() {
			small := chunker.New(chunker.WithMaxSize(50), chunker.WithOverlap(10))
			doc := strings.Repeat("x", 120)
			frags := small.Split([]string{doc})

			Expect(frags).To(HaveLen(3))
			for _, f := range frags {
				Expect(len(f.Text)).To(BeNumerically("<=", 50))
			}
		})
	})

	Describe("Whole", func() {
		It("wraps each non-empty document as one fragment", func() {
			long := words("a", 500)
			frags := chunker.Whole([]string{long, "", "b"})

			Expect(frags).To(HaveLen(2))
			Expect(frags[0].Text).To(Equal(long))
			Expect(frags[1].Source).To(Equal(2))
		})
	})
})
