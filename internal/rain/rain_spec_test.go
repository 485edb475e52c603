package rain_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chalbik/internal/rain"
)

var _ = Describe("Compositor", func() {
	const width, height = 24, 16

	var (
		comp     *rain.Compositor
		settings rain.Settings
	)

	BeforeEach(func() {
		comp = rain.NewCompositor(rain.PIqaD(), rand.New(rand.NewSource(2024)))
		settings = rain.DefaultSettings()
		settings.TailLifespan = 3 * time.Second
	})

	It("keeps heads inside the grid and one per column", func() {
		for i := 0; i < 300; i++ {
			elapsed := time.Duration(i) * 50 * time.Millisecond
			comp.Compose(settings, elapsed, width, height)
			for col := 0; col < width; col++ {
				if d, ok := comp.Tracker().Active(col); ok {
					Expect(d.HeadRow).To(BeNumerically("<", height))
					Expect(d.Column).To(Equal(col))
				}
			}
		}
	})

	It("only emits glyphs from its catalog", func() {
		glyphs := rain.PIqaD().Glyphs()
		for i := 0; i < 100; i++ {
			g := comp.Compose(settings, time.Duration(i)*50*time.Millisecond, width, height)
			for row := 0; row < g.Height; row++ {
				for _, cell := range g.Row(row) {
					if !cell.Empty() {
						Expect(glyphs).To(ContainElement(cell.Glyph))
					}
				}
			}
		}
	})

	It("eventually rains on a fast setting", func() {
		lit := 0
		for i := 0; i < 100 && lit == 0; i++ {
			lit = comp.Compose(settings, time.Duration(i)*50*time.Millisecond, width, height).Lit()
		}
		Expect(lit).To(BeNumerically(">", 0))
	})

	Context("with a slow setting", func() {
		It("spawns fewer drops than the fast setting", func() {
			count := func(speed rain.Speed) int {
				c := rain.NewCompositor(rain.PIqaD(), rand.New(rand.NewSource(9)))
				s := settings
				s.Speed = speed
				seen := make(map[int]time.Duration)
				spawns := 0
				for i := 0; i < 200; i++ {
					c.Compose(s, time.Duration(i)*50*time.Millisecond, 80, 24)
					for col := 0; col < 80; col++ {
						d, ok := c.Tracker().Active(col)
						if !ok {
							continue
						}
						if last, known := seen[col]; !known || last != d.SpawnTime {
							seen[col] = d.SpawnTime
							spawns++
						}
					}
				}
				return spawns
			}
			Expect(count(rain.SpeedSlow)).To(BeNumerically("<", count(rain.SpeedFast)))
		})
	})
})

var _ = Describe("Decay", func() {
	DescribeTable("boundary values",
		func(curve rain.Curve) {
			d := rain.Decay{Lifespan: 10 * time.Second, Curve: curve}
			Expect(d.Intensity(0)).To(Equal(1.0))
			Expect(d.Intensity(10 * time.Second)).To(Equal(0.0))
			Expect(d.Intensity(3 * time.Second)).To(BeNumerically(">", d.Intensity(4*time.Second)))
		},
		Entry("linear", rain.CurveLinear),
		Entry("exponential", rain.CurveExponential),
	)
})
