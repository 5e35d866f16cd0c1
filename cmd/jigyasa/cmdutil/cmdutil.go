// Package cmdutil holds helpers shared by the commands that talk to a
// running jigyasa server.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/jigyasa/pkg/agent"
	"github.com/papercomputeco/jigyasa/pkg/apiclient"
	"github.com/papercomputeco/jigyasa/pkg/cliui"
	"github.com/papercomputeco/jigyasa/pkg/config"
)

// AddAPITargetFlag registers --api-target on cmd.
func AddAPITargetFlag(cmd *cobra.Command) {
	var target string
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &target)
}

// NewClient builds an API client for the server named by --api-target,
// JIGYASA_CLIENT_API_TARGET or client.api_target, in that order.
func NewClient(cmd *cobra.Command) (*apiclient.Client, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagAPITarget})

	return apiclient.New(v.GetString(config.Flags[config.FlagAPITarget].ViperKey), nil)
}

// Context returns the command context or a background context.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// TextArg returns the joined args, or stdin when the only arg is "-".
func TextArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

// ReadFileArg returns the contents of path, or stdin for "-".
func ReadFileArg(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// PrintResult renders an agent result. Failed outcomes are marked and
// returned as an error so the command exits non-zero.
func PrintResult(w io.Writer, title, text, kind string) error {
	if (agent.Result{Kind: agent.Kind(kind)}).Failed() {
		fmt.Fprintf(w, "\n  %s %s %s\n\n", cliui.WarnStyle.Render("!"), text, cliui.DimStyle.Render("("+kind+")"))
		return fmt.Errorf("%s: %s", title, kind)
	}

	cliui.Section(w, title, text)
	return nil
}
