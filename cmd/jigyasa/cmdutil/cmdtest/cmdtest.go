// Package cmdtest runs client commands against an in-process jigyasa
// server backed by mocks.
package cmdtest

import (
	"bytes"
	"net/http/httptest"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/api"
	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/logger"
	"github.com/papercomputeco/jigyasa/pkg/market"
	"github.com/papercomputeco/jigyasa/pkg/notebook"
	testutils "github.com/papercomputeco/jigyasa/pkg/utils/test"
)

// Server is a running test server.
type Server struct {
	*httptest.Server

	Notes     *notebook.Notebook
	Generator *testutils.MockGenerator
	Extractor *testutils.MockExtractor
}

// NewServer starts a server whose model answers with responses in turn.
// provider may be nil.
func NewServer(provider market.Provider, responses ...string) (*Server, error) {
	gen := testutils.NewMockGenerator(responses...)
	ext := testutils.NewMockExtractor("Article body about Acme.")
	notes := notebook.New(nil)

	agents, err := agent.New(agent.Config{
		Embedder:     testutils.NewMockEmbedder(),
		IndexFactory: testutils.NewMockIndexFactory().Factory(),
		Generate:     gen.CallFunc(),
		Extractor:    ext,
	})
	if err != nil {
		return nil, err
	}

	server, err := api.NewServer(api.Config{Market: provider}, agents, notes, logger.Nop())
	if err != nil {
		return nil, err
	}

	return &Server{
		Server:    httptest.NewServer(server.Handler()),
		Notes:     notes,
		Generator: gen,
		Extractor: ext,
	}, nil
}

// Execute runs cmd under a root that carries the global flags, pointed at
// target with a throwaway config directory. It returns the command output.
func Execute(target string, cmd *cobra.Command, args ...string) (string, error) {
	configDir, err := os.MkdirTemp("", "jigyasa-cmd-test-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(configDir)

	root := &cobra.Command{Use: "jigyasa", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().BoolP("debug", "d", false, "")
	root.PersistentFlags().String("config-dir", "", "")
	root.AddCommand(cmd)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append(args, "--api-target", target, "--config-dir", configDir))

	err = root.Execute()
	return out.String(), err
}
