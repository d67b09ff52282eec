package algo_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/dataset"
)

func TestAlgoSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Algorithm Engine Suite")
}

var _ = Describe("Engine", func() {
	var reg *algo.Registry

	BeforeEach(func() {
		reg = algo.NewRegistry()
	})

	DescribeTable("sorts generated datasets",
		func(kind dataset.Kind) {
			input, err := dataset.Generate(kind, 48, 11)
			Expect(err).NotTo(HaveOccurred())
			for _, name := range reg.List() {
				if name == "bogo" {
					continue
				}
				sorter, err := reg.Get(name)
				Expect(err).NotTo(HaveOccurred())
				eng := algo.New(sorter)
				out, err := eng.Execute(context.Background(), input, algo.Options{Seed: 2})
				Expect(err).NotTo(HaveOccurred(), "algorithm %s", name)
				Expect(out).To(HaveLen(len(input)))
				for i := 1; i < len(out); i++ {
					Expect(out[i]).To(BeNumerically(">=", out[i-1]), "algorithm %s at %d", name, i)
				}
			}
		},
		Entry("random", dataset.KindRandom),
		Entry("sorted", dataset.KindSorted),
		Entry("reversed", dataset.KindReversed),
		Entry("nearly-sorted", dataset.KindNearlySorted),
		Entry("few-unique", dataset.KindFewUnique),
		Entry("sawtooth", dataset.KindSawtooth),
	)

	It("keeps metrics reproducible from the history alone", func() {
		input, err := dataset.Generate(dataset.KindRandom, 64, 7)
		Expect(err).NotTo(HaveOccurred())
		eng := algo.New(algo.NewShell())
		_, err = eng.Execute(context.Background(), input, algo.Options{})
		Expect(err).NotTo(HaveOccurred())

		recounted := eng.History().Recount()
		live := eng.Metrics()
		Expect(recounted.Comparisons).To(Equal(live.Comparisons))
		Expect(recounted.Swaps).To(Equal(live.Swaps))
		Expect(live.Swaps * 2).To(BeNumerically("<=", live.Reads+live.Writes))
	})
})
