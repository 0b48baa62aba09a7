package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("DefaultConfig", func() {
		It("should match the desktop defaults", func() {
			c := config.DefaultConfig()

			Expect(c.InstructionsPerSecond).To(Equal(700))
			Expect(c.FramesPerSecond).To(Equal(60))
			Expect(c.PixelSize).To(Equal(10))
			Expect(c.Validate()).To(Succeed())

			mode, err := c.EmuMode()
			Expect(err).ToNot(HaveOccurred())
			Expect(mode).To(Equal(emu.ModeLegacy))

			screen, err := c.ScreenMode()
			Expect(err).ToNot(HaveOccurred())
			Expect(screen).To(Equal(emu.ScreenOriginal))

			km, err := c.HostKeymap()
			Expect(err).ToNot(HaveOccurred())
			Expect(km).To(Equal(emu.DefaultKeymap))
		})
	})

	Describe("LoadConfig", func() {
		It("should load JSON and keep defaults for missing fields", func() {
			path := filepath.Join(dir, "c8.json")
			Expect(os.WriteFile(path, []byte(`{"mode": "modern", "seed": 7}`), 0644)).To(Succeed())

			c, err := config.LoadConfig(path)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.Mode).To(Equal("modern"))
			Expect(c.Seed).To(Equal(uint64(7)))
			Expect(c.InstructionsPerSecond).To(Equal(700))
		})

		It("should load YAML", func() {
			path := filepath.Join(dir, "c8.yaml")
			data := "screen: extended\ninstructions_per_second: 1000\nkeymap:\n  A: P\n"
			Expect(os.WriteFile(path, []byte(data), 0644)).To(Succeed())

			c, err := config.LoadConfig(path)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.Screen).To(Equal("extended"))
			Expect(c.InstructionsPerSecond).To(Equal(1000))

			km, err := c.HostKeymap()
			Expect(err).ToNot(HaveOccurred())
			Expect(km[0xA]).To(Equal(emu.HostKey('P')))
			Expect(km[0xB]).To(Equal(emu.HostKey('C')))
		})

		It("should fail on a missing file", func() {
			_, err := config.LoadConfig(filepath.Join(dir, "missing.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should fail on malformed content", func() {
			path := filepath.Join(dir, "bad.json")
			Expect(os.WriteFile(path, []byte("{"), 0644)).To(Succeed())

			_, err := config.LoadConfig(path)
			Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
		})
	})

	Describe("SaveConfig", func() {
		DescribeTable("should round trip through a file",
			func(name string) {
				c := config.DefaultConfig()
				c.Mode = "modern"
				c.Keymap = map[string]string{"0": "M"}
				path := filepath.Join(dir, name)

				Expect(c.SaveConfig(path)).To(Succeed())
				loaded, err := config.LoadConfig(path)

				Expect(err).ToNot(HaveOccurred())
				Expect(loaded).To(Equal(c))
			},
			Entry("JSON", "c8.json"),
			Entry("YAML", "c8.yml"),
		)
	})

	Describe("Validate", func() {
		DescribeTable("should reject bad values",
			func(mutate func(*config.Config)) {
				c := config.DefaultConfig()
				mutate(c)
				Expect(c.Validate()).ToNot(Succeed())
			},
			Entry("mode", func(c *config.Config) { c.Mode = "turbo" }),
			Entry("screen", func(c *config.Config) { c.Screen = "huge" }),
			Entry("ips", func(c *config.Config) { c.InstructionsPerSecond = 0 }),
			Entry("fps", func(c *config.Config) { c.FramesPerSecond = -1 }),
			Entry("pixel size", func(c *config.Config) { c.PixelSize = 0 }),
			Entry("keymap key", func(c *config.Config) { c.Keymap = map[string]string{"G": "Q"} }),
			Entry("keymap value", func(c *config.Config) { c.Keymap = map[string]string{"1": "QQ"} }),
		)
	})

	Describe("Clone", func() {
		It("should not share the keymap", func() {
			c := config.DefaultConfig()
			c.Keymap = map[string]string{"1": "Q"}

			clone := c.Clone()
			clone.Keymap["1"] = "W"

			Expect(c.Keymap["1"]).To(Equal("Q"))
		})
	})
})
