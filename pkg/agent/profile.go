package agent

import "github.com/papercomputeco/jigyasa/pkg/prompts"

// Profile parameterizes the retrieval pipeline for one agent.
type Profile struct {
	Name string

	// Template is rendered with the query under QueryKey and the retrieved
	// context under ContextKey.
	Template   prompts.Template
	QueryKey   string
	ContextKey string

	// TopK is the number of fragments retrieved.
	TopK int

	// Chunk splits notes into fragments; otherwise each note is one fragment.
	Chunk bool

	// Separator joins retrieved fragments into the context.
	Separator string
}

var (
	SynthesisProfile = Profile{
		Name:       "synthesis",
		Template:   prompts.Synthesis,
		QueryKey:   "question",
		ContextKey: "context",
		TopK:       3,
		Chunk:      true,
		Separator:  "\n\n",
	}

	VerifierProfile = Profile{
		Name:       "verifier",
		Template:   prompts.Verifier,
		QueryKey:   "new_note",
		ContextKey: "context",
		TopK:       3,
		Chunk:      true,
		Separator:  "\n\n",
	}

	SummaryProfile = Profile{
		Name:       "smart-summary",
		Template:   prompts.SmartSummary,
		QueryKey:   "new_article",
		ContextKey: "context",
		TopK:       5,
		Chunk:      false,
		Separator:  "\n\n",
	}
)
