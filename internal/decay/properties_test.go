package decay_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/decay"
)

func samplesOf(iso decay.Isotope, p decay.Params) []decay.Sample {
	seq, err := decay.Compute(iso, p)
	Expect(err).NotTo(HaveOccurred())
	var out []decay.Sample
	for s := range seq {
		out = append(out, s)
	}
	return out
}

var _ = Describe("Compute", func() {
	Context("across the whole catalog", func() {
		for _, iso := range catalog.All() {
			for _, unit := range catalog.Units() {
				It("holds the curve invariants for "+iso.Symbol+" in "+unit.Name, func() {
					p := decay.DefaultParams()
					p.UnitFactor = unit.Seconds
					p.Unit = unit.Name
					samples := samplesOf(iso, p)

					Expect(samples).To(HaveLen(decay.DefaultSamples))
					Expect(samples[0].T).To(BeZero())
					Expect(samples[0].N).To(BeNumerically("~", p.Initial, p.Initial*1e-12))

					for i := 1; i < len(samples); i++ {
						Expect(samples[i].N).To(BeNumerically("<=", samples[i-1].N))
						Expect(samples[i].A).To(BeNumerically("<=", samples[i-1].A))
						Expect(samples[i].N).To(BeNumerically(">=", 0))
					}

					want := p.Multiple * iso.HalfLife / unit.Seconds
					Expect(samples[len(samples)-1].T).To(Equal(want))
				})
			}
		}
	})

	It("halves the population at one half-life", func() {
		for _, iso := range catalog.All() {
			s, err := decay.Evaluate(iso, 1e6, iso.HalfLife)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.Abs(s.N-5e5) / 5e5).To(BeNumerically("<", 1e-9))
		}
	})

	It("satisfies λτ = 1", func() {
		for _, iso := range catalog.All() {
			lambda := decay.DecayConstant(iso.HalfLife)
			tau := decay.MeanLifetime(iso.HalfLife)
			Expect(lambda * tau).To(BeNumerically("~", 1, 1e-12))
		}
	})

	Describe("scenarios", func() {
		It("spans one Iodine-131 half-life in days", func() {
			iso, err := catalog.Lookup("I-131")
			Expect(err).NotTo(HaveOccurred())

			samples := samplesOf(iso, decay.Params{
				Initial:    1e6,
				UnitFactor: catalog.Day.Seconds,
				Unit:       catalog.Day.Name,
				Multiple:   1,
				Samples:    600,
			})
			Expect(samples).To(HaveLen(600))
			Expect(samples[len(samples)-1].T).To(BeNumerically("~", 8.02, 1e-12))
			Expect(samples[len(samples)-1].N).To(BeNumerically("~", 500000, 1e-3))
		})

		It("quarters Technetium-99m every two half-lives", func() {
			iso, err := catalog.Lookup("Tc-99m")
			Expect(err).NotTo(HaveOccurred())

			for h, want := range map[float64]float64{6: 0.5, 12: 0.25, 18: 0.125} {
				s, err := decay.Evaluate(iso, 1, h*catalog.Hour.Seconds)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.N).To(BeNumerically("~", want, want*1e-9))
			}
		})

		It("rejects N0 = 0", func() {
			iso := catalog.DefaultIsotope()
			p := decay.DefaultParams()
			p.Initial = 0
			seq, err := decay.Compute(iso, p)
			Expect(err).To(MatchError(decay.ErrInvalidParameter))
			Expect(seq).To(BeNil())
		})

		It("rejects a single sample", func() {
			iso := catalog.DefaultIsotope()
			p := decay.DefaultParams()
			p.Samples = 1
			_, err := decay.Compute(iso, p)
			Expect(err).To(MatchError(decay.ErrInvalidParameter))
		})
	})
})
