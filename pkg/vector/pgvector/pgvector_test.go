package pgvector_test

import (
	"context"
	"os"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
	"github.com/papercomputeco/jigyasa/pkg/vector/pgvector"
)

var _ = Describe("pgvector", func() {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	It("requires a DSN", func() {
		_, err := pgvector.NewStore(context.Background(), pgvector.Config{}, zap.NewNop())
		Expect(err).To(MatchError(ContainSubstring("DSN is required")))
	})

	It("derives identifier-safe table names", func() {
		name := pgvector.TableName(uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"))
		Expect(name).To(Equal("jigyasa_0f8fad5bd9cb469fa16570867728950e"))
	})

	It("builds a multi-row insert", func() {
		qry, args, err := pgvector.InsertSQL(sb, "t", []vector.Document{
			{ID: "a", Seq: 0, Text: "alpha", Embedding: []float32{1, 0}},
			{ID: "b", Seq: 1, Text: "beta", Embedding: []float32{0, 1}},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(qry).To(Equal("INSERT INTO t (doc_id,seq,text,embedding) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)"))
		Expect(args).To(HaveLen(8))
	})

	It("orders nearest neighbours by distance then insertion order", func() {
		qry, args, err := pgvector.QuerySQL(sb, "t", []float32{1, 0}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(qry).To(Equal("SELECT doc_id, seq, text, embedding <=> $1 AS distance FROM t ORDER BY distance, seq LIMIT 3"))
		Expect(args).To(HaveLen(1))
	})

	Context("against a live database", func() {
		var store *pgvector.Store

		BeforeEach(func() {
			dsn := os.Getenv("JIGYASA_TEST_PG_DSN")
			if dsn == "" {
				Skip("JIGYASA_TEST_PG_DSN not set")
			}
			var err error
			store, err = pgvector.NewStore(context.Background(), pgvector.Config{DSN: dsn}, zap.NewNop())
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(store.Close)
		})

		It("ranks documents and drops its table on Close", func() {
			ctx := context.Background()
			idx, err := store.NewIndex(ctx)
			Expect(err).NotTo(HaveOccurred())

			docs, err := vector.Documents([]string{"a", "b", "c"}, [][]float32{{1, 0}, {0, 1}, {1, 0}})
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Add(ctx, docs)).To(Succeed())

			results, err := idx.Query(ctx, []float32{1, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Text).To(Equal("a"))
			Expect(results[1].Text).To(Equal("c"))

			Expect(idx.Close()).To(Succeed())
			Expect(idx.Close()).To(Succeed())
		})
	})
})
