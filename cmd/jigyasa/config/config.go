// Package configcmder provides the config command for managing persistent
// jigyasa configuration stored in the .jigyasa/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent jigyasa configuration.

Configuration is stored as config.toml in the .jigyasa/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  api.listen, client.api_target,
  llm.provider, llm.model, llm.target, llm.timeout_seconds,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  vector_store.provider, vector_store.target,
  retrieval.chunk_size, retrieval.chunk_overlap, retrieval.article_limit,
  events.provider, events.brokers, events.topic,
  market.target, ingest.watch_dir

Use subcommands to get, set, or list configuration values:
  jigyasa config set <key> <value>    Set a configuration value
  jigyasa config get <key>            Get a configuration value
  jigyasa config list                 List all configuration values

Examples:
  jigyasa config set llm.provider anthropic
  jigyasa config set vector_store.provider qdrant
  jigyasa config get llm.model
  jigyasa config list`

const configShortDesc string = "Manage persistent jigyasa configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
