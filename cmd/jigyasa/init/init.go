// Package initcmder provides the init command for initializing a local
// .jigyasa directory in the current working directory.
package initcmder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/pkg/cliui"
	"github.com/papercomputeco/jigyasa/pkg/config"
)

const (
	dirName = ".jigyasa"

	remoteTimeout = 30 * time.Second
)

const initLongDesc string = `Initialize a new .jigyasa/ directory in the current working directory.

Creates a local .jigyasa/ directory that takes precedence over the default
~/.jigyasa/ directory for configuration and credentials. A config.toml is
written with default values unless one already exists.

Use --preset to write a config.toml for a known provider (openai, anthropic,
ollama, gemini) or fetch one from a remote URL. A preset always overwrites
an existing config.toml.

Examples:
  jigyasa init
  jigyasa init --preset openai
  jigyasa init --preset https://example.com/jigyasa/config.toml`

const initShortDesc string = "Initialize a local .jigyasa/ directory"

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "", "Provider preset name or URL of a remote config.toml")

	return cmd
}

func (c *initCommander) run(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)
	existed := false
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		existed = true
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .jigyasa directory: %w", err)
	}

	cfg, err := c.resolveConfig(ctx)
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, "config.toml")
	_, statErr := os.Stat(configPath)
	if c.preset != "" || os.IsNotExist(statErr) {
		cfger, err := config.NewConfiger(dir)
		if err != nil {
			return err
		}
		if err := cfger.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s Wrote %s\n", cliui.SuccessMark, cliui.DimStyle.Render(configPath))
	}

	if existed {
		fmt.Fprintf(w, "Already initialized: %s\n", dir)
		return nil
	}

	fmt.Fprintf(w, "%s Initialized .jigyasa directory: %s\n", cliui.SuccessMark, dir)
	return nil
}

// resolveConfig returns the config selected by --preset: defaults when unset,
// a named preset, or a config.toml fetched from a URL.
func (c *initCommander) resolveConfig(ctx context.Context) (*config.Config, error) {
	switch {
	case c.preset == "":
		return config.NewDefaultConfig(), nil
	case strings.HasPrefix(c.preset, "http://"), strings.HasPrefix(c.preset, "https://"):
		return fetchRemoteConfig(ctx, c.preset)
	default:
		return config.PresetConfig(c.preset)
	}
}

func fetchRemoteConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remote config: %w", err)
	}

	return config.ParseConfigTOML(data)
}
