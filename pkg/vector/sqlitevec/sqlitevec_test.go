package sqlitevec_test

import (
	"context"
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
	"github.com/papercomputeco/jigyasa/pkg/vector/sqlitevec"
)

var _ = Describe("Index", func() {
	var (
		ctx    context.Context
		logger *zap.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = zap.NewNop()
	})

	Describe("NewIndex", func() {
		It("should create an index with an in-memory database", func() {
			idx, err := sqlitevec.NewIndex(ctx, sqlitevec.Config{}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).NotTo(BeNil())
			Expect(idx.Close()).To(Succeed())
		})

		It("should tolerate a second Close", func() {
			idx, err := sqlitevec.NewIndex(ctx, sqlitevec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Close()).To(Succeed())
			Expect(idx.Close()).To(Succeed())
		})
	})

	Describe("Query", func() {
		var idx *sqlitevec.Index

		BeforeEach(func() {
			var err error
			idx, err = sqlitevec.NewIndex(ctx, sqlitevec.Config{}, logger)
			Expect(err).NotTo(HaveOccurred())

			docs, err := vector.Documents(
				[]string{"one", "two", "three", "four", "five"},
				[][]float32{
					{1, 1, 1, 1},
					{2, 2, 2, 2},
					{3, 3, 3, 3},
					{4, 4, 4, 4},
					{5, 5, 5, 5},
				},
			)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Add(ctx, docs)).To(Succeed())
		})

		AfterEach(func() {
			Expect(idx.Close()).To(Succeed())
		})

		It("should return the closest documents", func() {
			results, err := idx.Query(ctx, []float32{3, 3, 3, 3}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect(results[0].Text).To(Equal("three"))
		})

		It("should cap k at the number of documents", func() {
			results, err := idx.Query(ctx, []float32{3, 3, 3, 3}, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(5))
		})

		It("should return nothing for non-positive k", func() {
			results, err := idx.Query(ctx, []float32{3, 3, 3, 3}, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})

		It("should keep insertion order for equally distant documents", func() {
			// two and four are equally distant from three
			results, err := idx.Query(ctx, []float32{3, 3, 3, 3}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[1].Text).To(Equal("two"))
			Expect(results[2].Text).To(Equal("four"))
		})

		It("should return similarity scores in descending order", func() {
			results, err := idx.Query(ctx, []float32{3, 3, 3, 3}, 5)
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(results); i++ {
				Expect(results[i-1].Score).To(BeNumerically(">=", results[i].Score))
			}
		})

		It("should reject a query of another dimensionality", func() {
			_, err := idx.Query(ctx, []float32{3}, 1)
			Expect(err).To(MatchError(vector.ErrDimensionMismatch))
		})
	})

	Describe("file-backed databases", func() {
		It("should drop the index tables on Close", func() {
			path := filepath.Join(GinkgoT().TempDir(), "vectors.db")
			idx, err := sqlitevec.NewIndex(ctx, sqlitevec.Config{DBPath: path, Dimensions: 2}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Add(ctx, []vector.Document{{ID: "a", Embedding: []float32{1, 0}}})).To(Succeed())
			Expect(idx.Close()).To(Succeed())

			db, err := sql.Open("sqlite3", path)
			Expect(err).NotTo(HaveOccurred())
			defer db.Close()

			var tables int
			Expect(db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE name LIKE 'vec_documents_%'`).Scan(&tables)).To(Succeed())
			Expect(tables).To(Equal(0))
		})
	})
})
