package qdrant_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
	"github.com/papercomputeco/jigyasa/pkg/vector/qdrant"
)

var _ = Describe("Store", func() {
	var store *qdrant.Store

	BeforeEach(func() {
		var err error
		store, err = qdrant.NewStore(qdrant.Config{}, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("names every index uniquely", func() {
		a, err := store.NewIndex(context.Background())
		Expect(err).NotTo(HaveOccurred())
		b, err := store.NewIndex(context.Background())
		Expect(err).NotTo(HaveOccurred())

		nameA := a.(*qdrant.Index).Name()
		Expect(nameA).To(HavePrefix(qdrant.CollectionPrefix))
		Expect(nameA).NotTo(Equal(b.(*qdrant.Index).Name()))
	})

	It("answers an empty index without contacting the server", func() {
		idx, err := store.NewIndex(context.Background())
		Expect(err).NotTo(HaveOccurred())

		results, err := idx.Query(context.Background(), []float32{1, 0}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())

		Expect(idx.Close()).To(Succeed())
		Expect(idx.Close()).To(Succeed())
	})

	It("refuses use after Close", func() {
		idx, err := store.NewIndex(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(idx.Close()).To(Succeed())

		err = idx.Add(context.Background(), []vector.Document{{ID: "a", Embedding: []float32{1}}})
		Expect(err).To(MatchError(vector.ErrClosed))
	})

	It("rejects mixed dimensionality before any network call", func() {
		idx, err := store.NewIndex(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer idx.Close()

		err = idx.Add(context.Background(), []vector.Document{
			{ID: "a", Embedding: []float32{1, 0}},
			{ID: "b", Embedding: []float32{1}},
		})
		Expect(err).To(MatchError(vector.ErrDimensionMismatch))
	})
})
