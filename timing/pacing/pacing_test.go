package pacing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/timing/pacing"
)

var _ = Describe("Pacer", func() {
	It("should hand out 11 or 12 steps per frame at 700/60", func() {
		p := pacing.NewDefaultPacer()

		total := 0
		for i := 0; i < 60; i++ {
			n := p.Next()
			Expect(n).To(BeElementOf(11, 12))
			total += n
		}

		Expect(total).To(Equal(700))
	})

	It("should divide evenly when it can", func() {
		p, err := pacing.NewPacer(600, 60)
		Expect(err).ToNot(HaveOccurred())

		for i := 0; i < 10; i++ {
			Expect(p.Next()).To(Equal(10))
		}
	})

	It("should allow fewer instructions than frames", func() {
		p, err := pacing.NewPacer(30, 60)
		Expect(err).ToNot(HaveOccurred())

		Expect(p.Next()).To(Equal(0))
		Expect(p.Next()).To(Equal(1))
	})

	It("should drop the carry on reset", func() {
		p, err := pacing.NewPacer(30, 60)
		Expect(err).ToNot(HaveOccurred())

		p.Next()
		p.Reset()

		Expect(p.Next()).To(Equal(0))
	})

	It("should reject non-positive rates", func() {
		_, err := pacing.NewPacer(0, 60)
		Expect(err).To(HaveOccurred())

		_, err = pacing.NewPacer(700, -1)
		Expect(err).To(HaveOccurred())
	})

	It("should report the frame duration", func() {
		p, err := pacing.NewPacer(700, 50)
		Expect(err).ToNot(HaveOccurred())

		Expect(p.FrameDuration()).To(Equal(20 * time.Millisecond))
		Expect(p.InstructionsPerSecond()).To(Equal(700))
		Expect(p.FramesPerSecond()).To(Equal(50))
	})
})
