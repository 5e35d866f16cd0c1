package initcmder_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/papercomputeco/jigyasa/cmd/jigyasa/init"
	"github.com/papercomputeco/jigyasa/pkg/config"
)

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Args(cmd, []string{})).To(Succeed())
		Expect(cmd.Args(cmd, []string{"extra"})).NotTo(Succeed())
	})

	It("has a --preset flag", func() {
		cmd := initcmder.NewInitCmd()
		f := cmd.Flags().Lookup("preset")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(""))
	})
})

var _ = Describe("Init command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     *bytes.Buffer
	)

	execute := func(args ...string) error {
		cmd := initcmder.NewInitCmd()
		cmd.SetOut(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "jigyasa-init-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tmpDir)).To(Succeed())

		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tmpDir)
	})

	It("creates a .jigyasa directory with a default config.toml", func() {
		Expect(execute()).To(Succeed())

		info, err := os.Stat(filepath.Join(tmpDir, ".jigyasa"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.LLM.Provider).To(Equal("ollama"))
		Expect(cfg.LLM.Target).To(Equal("http://localhost:11434"))
		Expect(cfg.API.Listen).To(Equal(":8000"))
		Expect(cfg.Retrieval.ChunkSize).To(Equal(uint(1000)))
		Expect(out.String()).To(ContainSubstring("Initialized .jigyasa directory"))
	})

	It("keeps existing contents and config when already initialized", func() {
		dir := filepath.Join(tmpDir, ".jigyasa")
		Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
		custom := "version = 0\n\n[llm]\nprovider = \"openai\"\n"
		Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(custom), 0o600)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o600)).To(Succeed())

		Expect(execute()).To(Succeed())

		Expect(loadConfig(tmpDir).LLM.Provider).To(Equal("openai"))
		data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("keep"))
		Expect(out.String()).To(ContainSubstring("Already initialized"))
	})

	Describe("--preset with provider presets", func() {
		It("creates config.toml with the openai preset", func() {
			Expect(execute("--preset", "openai")).To(Succeed())

			cfg := loadConfig(tmpDir)
			Expect(cfg.LLM.Provider).To(Equal("openai"))
			Expect(cfg.LLM.Model).To(Equal("gpt-4o-mini"))
			Expect(cfg.LLM.Target).To(Equal("https://api.openai.com"))
			Expect(cfg.API.Listen).To(Equal(":8000"))
		})

		It("creates config.toml with the gemini preset", func() {
			Expect(execute("--preset", "gemini")).To(Succeed())

			cfg := loadConfig(tmpDir)
			Expect(cfg.LLM.Provider).To(Equal("gemini"))
			Expect(cfg.Embedding.Provider).To(Equal("gemini"))
			Expect(cfg.Embedding.Model).To(Equal("text-embedding-004"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))
		})

		It("rejects unknown preset names", func() {
			err := execute("--preset", "invalid-provider")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown preset"))
		})

		It("overwrites config.toml when re-run with a different preset", func() {
			Expect(execute("--preset", "openai")).To(Succeed())
			Expect(loadConfig(tmpDir).LLM.Provider).To(Equal("openai"))

			Expect(execute("--preset", "anthropic")).To(Succeed())
			Expect(loadConfig(tmpDir).LLM.Provider).To(Equal("anthropic"))
		})
	})

	Describe("--preset with remote URL", func() {
		It("fetches and writes a remote config.toml", func() {
			remoteCfg := `version = 0

[llm]
provider = "openai"
model = "gpt-4o"

[retrieval]
chunk_size = 500
`
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, remoteCfg)
			}))
			defer server.Close()

			Expect(execute("--preset", server.URL)).To(Succeed())

			cfg := loadConfig(tmpDir)
			Expect(cfg.LLM.Provider).To(Equal("openai"))
			Expect(cfg.LLM.Model).To(Equal("gpt-4o"))
			Expect(cfg.Retrieval.ChunkSize).To(Equal(uint(500)))
		})

		It("returns an error for a non-200 response", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			err := execute("--preset", server.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("HTTP 404"))
		})

		It("returns an error for invalid TOML", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "this is not valid toml [[[")
			}))
			defer server.Close()

			err := execute("--preset", server.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("parsing"))
		})

		It("returns an error for an unreachable URL", func() {
			err := execute("--preset", "http://127.0.0.1:1")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fetching remote config"))
		})
	})
})

func loadConfig(baseDir string) *config.Config {
	data, err := os.ReadFile(filepath.Join(baseDir, ".jigyasa", "config.toml"))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	ExpectWithOffset(1, toml.Unmarshal(data, cfg)).To(Succeed())
	return cfg
}
