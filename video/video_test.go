package video_test

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/video"
)

var _ = Describe("Video", func() {
	var fb *emu.Framebuffer

	BeforeEach(func() {
		fb = emu.NewFramebuffer(64, 32)
		fb.SetPixel(1, 2, true)
	})

	It("should pack RGBA bytes row by row", func() {
		pix := video.RGBA(fb, nil)

		Expect(pix).To(HaveLen(64 * 32 * 4))
		i := (2*64 + 1) * 4
		Expect(pix[i : i+4]).To(Equal([]byte{video.On.R, video.On.G, video.On.B, 0xFF}))
		Expect(pix[0:4]).To(Equal([]byte{0, 0, 0, 0xFF}))
	})

	It("should reuse a large enough buffer", func() {
		buf := make([]byte, 64*32*4)

		pix := video.RGBA(fb, buf)

		Expect(&pix[0]).To(BeIdenticalTo(&buf[0]))
	})

	It("should build an image of the framebuffer size", func() {
		img := video.Image(fb)

		Expect(img.Bounds().Dx()).To(Equal(64))
		Expect(img.Bounds().Dy()).To(Equal(32))
		Expect(img.RGBAAt(1, 2)).To(Equal(video.On))
		Expect(img.RGBAAt(0, 0)).To(Equal(video.Off))
	})

	It("should scale with nearest-neighbor sampling", func() {
		img := video.Scaled(fb, 10)

		Expect(img.Bounds().Dx()).To(Equal(640))
		Expect(img.Bounds().Dy()).To(Equal(320))
		Expect(img.RGBAAt(10, 20)).To(Equal(video.On))
		Expect(img.RGBAAt(19, 29)).To(Equal(video.On))
		Expect(img.RGBAAt(20, 20)).To(Equal(video.Off))
	})

	It("should save a PNG screenshot", func() {
		path := filepath.Join(GinkgoT().TempDir(), "shot.png")

		Expect(video.SaveScreenshot(path, fb, 2)).To(Succeed())

		f, err := os.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = f.Close() }()
		img, err := png.Decode(f)
		Expect(err).ToNot(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(128))
	})

	It("should report a failed close after a successful encode", func() {
		w := &failingCloser{closeErr: errors.New("disk full")}

		err := video.WritePNG(w, video.Image(fb))

		Expect(err).To(MatchError(ContainSubstring("failed to close screenshot")))
		Expect(err).To(MatchError(w.closeErr))
		Expect(w.closed).To(BeTrue())
		Expect(w.Len()).To(BeNumerically(">", 0))
	})

	It("should close the file after encoding", func() {
		w := &failingCloser{}

		Expect(video.WritePNG(w, video.Image(fb))).To(Succeed())
		Expect(w.closed).To(BeTrue())
	})
})

// failingCloser buffers writes and returns closeErr from Close.
type failingCloser struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}
