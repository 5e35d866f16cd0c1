package vectorutils_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/jigyasa/pkg/vector/inmemory"
	"github.com/papercomputeco/jigyasa/pkg/vector/sqlitevec"
	vectorutils "github.com/papercomputeco/jigyasa/pkg/vector/utils"
)

var _ = Describe("NewIndexFactory", func() {
	ctx := context.Background()

	It("defaults to the in-memory index", func() {
		factory, closer, err := vectorutils.NewIndexFactory(ctx, &vectorutils.NewIndexFactoryOpts{})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(closer)

		idx, err := factory(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(idx).To(BeAssignableToTypeOf(&inmemory.Index{}))
		Expect(idx.Close()).To(Succeed())
	})

	It("builds fresh sqlite-vec indexes", func() {
		factory, closer, err := vectorutils.NewIndexFactory(ctx, &vectorutils.NewIndexFactoryOpts{ProviderType: "sqlitevec"})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(closer)

		a, err := factory(ctx)
		Expect(err).NotTo(HaveOccurred())
		b, err := factory(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(BeAssignableToTypeOf(&sqlitevec.Index{}))
		Expect(a).NotTo(BeIdenticalTo(b))
		Expect(a.Close()).To(Succeed())
		Expect(b.Close()).To(Succeed())
	})

	It("requires a chroma URL", func() {
		_, _, err := vectorutils.NewIndexFactory(ctx, &vectorutils.NewIndexFactoryOpts{ProviderType: "chroma"})
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown providers", func() {
		_, _, err := vectorutils.NewIndexFactory(ctx, &vectorutils.NewIndexFactoryOpts{ProviderType: "faiss"})
		Expect(err).To(MatchError(ContainSubstring("unsupported vector store provider")))
	})
})
