package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/agent"
)

var (
	askToolName    = "ask"
	askDescription = "Answer a research question using only the notes in the jigyasa notebook. Returns the synthesized answer, or a message when the notebook is empty."

	checkToolName    = "check_contradictions"
	checkDescription = "Check whether the most recent note contradicts any earlier note in the notebook."

	extractToolName    = "extract_data"
	extractDescription = "Extract key financial metrics from unstructured text into a markdown table."

	guideToolName    = "guide_research"
	guideDescription = "Ask Socratic questions about the given financial data, in the context of the notebook, to guide further research."

	summarizeToolName    = "summarize_url"
	summarizeDescription = "Fetch an article and summarize it relative to the notes already in the notebook."

	addNoteToolName    = "add_note"
	addNoteDescription = "Add a note to the jigyasa notebook. Returns the new note count."
)

// AskInput is the input of the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the research question to answer from the notes"`
}

// CheckInput is the input of the check_contradictions tool.
type CheckInput struct{}

// ExtractInput is the input of the extract_data tool.
type ExtractInput struct {
	Text string `json:"text" jsonschema:"unstructured text containing financial figures"`
}

// GuideInput is the input of the guide_research tool.
type GuideInput struct {
	FinancialData string `json:"financial_data" jsonschema:"the financial data to ask questions about"`
}

// SummarizeInput is the input of the summarize_url tool.
type SummarizeInput struct {
	URL string `json:"url" jsonschema:"the article URL to summarize"`
}

// AddNoteInput is the input of the add_note tool.
type AddNoteInput struct {
	Text   string `json:"text" jsonschema:"the note text"`
	Manual bool   `json:"manual,omitempty" jsonschema:"mark the note as a manual note or AI summary"`
}

// AgentOutput is the structured output of every agent tool.
type AgentOutput struct {
	Result string `json:"result"`
	Kind   string `json:"kind"`
}

// AddNoteOutput is the structured output of the add_note tool.
type AddNoteOutput struct {
	NoteCount int `json:"note_count"`
}

func (s *Server) handleAsk(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AgentOutput, error) {
	s.config.Logger.Debug("MCP ask request", zap.String("question", input.Question))
	return agentResult(s.config.Agents.Ask(ctx, input.Question, s.config.Notes.Snapshot()))
}

func (s *Server) handleCheckContradictions(ctx context.Context, _ *mcp.CallToolRequest, _ CheckInput) (*mcp.CallToolResult, AgentOutput, error) {
	return agentResult(s.config.Agents.CheckLatest(ctx, s.config.Notes.Snapshot()))
}

func (s *Server) handleExtractData(ctx context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, AgentOutput, error) {
	return agentResult(s.config.Agents.Extract(ctx, input.Text))
}

func (s *Server) handleGuideResearch(ctx context.Context, _ *mcp.CallToolRequest, input GuideInput) (*mcp.CallToolResult, AgentOutput, error) {
	return agentResult(s.config.Agents.Guide(ctx, s.config.Notes.Snapshot(), input.FinancialData))
}

func (s *Server) handleSummarizeURL(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, AgentOutput, error) {
	if strings.TrimSpace(input.URL) == "" {
		return errorResult("url is required"), AgentOutput{}, nil
	}
	s.config.Logger.Debug("MCP summarize request", zap.String("url", input.URL))
	return agentResult(s.config.Agents.Summarize(ctx, input.URL, s.config.Notes.Snapshot()))
}

func (s *Server) handleAddNote(_ context.Context, _ *mcp.CallToolRequest, input AddNoteInput) (*mcp.CallToolResult, AddNoteOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return errorResult("text is required"), AddNoteOutput{}, nil
	}

	var count int
	if input.Manual {
		count = s.config.Notes.AddManual(input.Text)
	} else {
		count = s.config.Notes.Add(input.Text)
	}
	return nil, AddNoteOutput{NoteCount: count}, nil
}

// agentResult reports failed agent runs as tool errors so the calling model
// sees them as such.
func agentResult(r agent.Result) (*mcp.CallToolResult, AgentOutput, error) {
	out := AgentOutput{Result: r.Message(), Kind: string(r.Kind)}
	return &mcp.CallToolResult{
		IsError: r.Failed(),
		Content: []mcp.Content{
			&mcp.TextContent{Text: out.Result},
		},
	}, out, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
	}
}
