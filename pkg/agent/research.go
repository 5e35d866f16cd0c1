package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/papercomputeco/jigyasa/pkg/prompts"
	"github.com/papercomputeco/jigyasa/pkg/utils"
)

var greetings = map[string]struct{}{
	"hello": {},
	"hi":    {},
	"hey":   {},
}

// Respond answers question from the notes.
func (a *Agents) Respond(ctx context.Context, question string, notes []string) Result {
	start := time.Now()
	if len(notes) == 0 {
		return a.done("respond", start, message(KindEmptyNotebook, MsgEmptyNotebook))
	}
	return a.done("respond", start, outcome(a.retrieve(ctx, SynthesisProfile, question, notes)))
}

// Ask answers greetings directly and otherwise behaves like Respond.
func (a *Agents) Ask(ctx context.Context, question string, notes []string) Result {
	if _, ok := greetings[strings.ToLower(strings.TrimSpace(question))]; ok {
		return a.done("ask", time.Now(), message(KindGreeting, MsgGreeting))
	}
	if len(notes) == 0 {
		return a.done("ask", time.Now(), message(KindEmptyNotebook, MsgAskEmptyNotebook))
	}
	return a.Respond(ctx, question, notes)
}

// Verify checks newNote against existing notes. A contradiction result
// carries the verifier's explanation; no contradiction carries empty text.
func (a *Agents) Verify(ctx context.Context, newNote string, existing []string) Result {
	start := time.Now()
	if len(existing) == 0 {
		return a.done("verify", start, message(KindNoContradiction, ""))
	}

	out, err := a.retrieve(ctx, VerifierProfile, newNote, existing)
	if err != nil {
		if isRetrieval(err) {
			return a.done("verify", start, outcome("", err))
		}
		return a.done("verify", start, failure(KindVerifierFailed, MsgVerifierFailed, err))
	}

	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, prompts.ContradictionMarker) {
		return a.done("verify", start, message(KindContradiction, out))
	}
	return a.done("verify", start, message(KindNoContradiction, ""))
}

// CheckLatest verifies the most recent note against all earlier ones.
func (a *Agents) CheckLatest(ctx context.Context, notes []string) Result {
	if len(notes) < 2 {
		return message(KindInsufficientNotes, MsgInsufficientNotes)
	}
	r := a.Verify(ctx, notes[len(notes)-1], notes[:len(notes)-1])
	if r.Kind == KindNoContradiction {
		r.Text = MsgNoRecentContradiction
	}
	return r
}

// Summarize fetches url and summarizes it in the context of the notes.
func (a *Agents) Summarize(ctx context.Context, url string, notes []string) Result {
	start := time.Now()
	if len(notes) == 0 {
		return a.done("summarize", start, message(KindEmptyNotebook, MsgSummaryEmptyNotebook))
	}
	if a.extractor == nil {
		err := errors.New("no extractor configured")
		return a.done("summarize", start, failure(KindFetchFailed, fetchMessage(err), err))
	}

	text, err := a.extractor.ReadableText(ctx, url)
	if err != nil {
		return a.done("summarize", start, failure(KindFetchFailed, fetchMessage(err), err))
	}
	if strings.TrimSpace(text) == "" {
		return a.done("summarize", start, message(KindNoReadableText, MsgNoReadableText))
	}

	article := utils.Head(text, a.articleLimit)
	return a.done("summarize", start, outcome(a.retrieve(ctx, SummaryProfile, article, notes)))
}

func fetchMessage(err error) string {
	return "Error: Failed to fetch or parse the URL. Details: " + err.Error()
}

func isRetrieval(err error) bool {
	return errors.Is(err, ErrRetrieval)
}
