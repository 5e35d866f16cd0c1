package agent

// Kind tags the outcome of an agent operation.
type Kind string

const (
	KindAnswer            Kind = "answer"
	KindEmptyNotebook     Kind = "empty_notebook"
	KindGreeting          Kind = "greeting"
	KindContradiction     Kind = "contradiction"
	KindNoContradiction   Kind = "no_contradiction"
	KindVerifierFailed    Kind = "verifier_failed"
	KindFetchFailed       Kind = "fetch_failed"
	KindNoReadableText    Kind = "no_readable_text"
	KindGenerationFailed  Kind = "generation_failed"
	KindRetrievalFailed   Kind = "retrieval_failed"
	KindInsufficientNotes Kind = "insufficient_notes"
)

// User-facing messages for outcomes that carry no model output.
const (
	MsgEmptyNotebook         = "The notebook is empty."
	MsgAskEmptyNotebook      = "My notebook is empty. Please add some notes first."
	MsgSummaryEmptyNotebook  = "Your notebook is empty. Please add some notes before trying to get a smart summary."
	MsgGreeting              = "Hello! How can I help you with your research?"
	MsgVerifierFailed        = "Error: The Verifier Agent encountered a problem."
	MsgNoReadableText        = "Error: Could not extract readable text from this URL."
	MsgInsufficientNotes     = "You need at least two notes to check for contradictions."
	MsgNoRecentContradiction = "No contradictions found among your recent notes."
)

// Result is the tagged outcome of an agent operation. Text is the model
// output or the user-facing message; Err is the underlying failure, if any.
type Result struct {
	Kind Kind
	Text string
	Err  error
}

// Message returns the text shown to the user.
func (r Result) Message() string {
	return r.Text
}

// Failed reports whether the operation could not produce its answer.
func (r Result) Failed() bool {
	switch r.Kind {
	case KindVerifierFailed, KindFetchFailed, KindNoReadableText, KindGenerationFailed, KindRetrievalFailed:
		return true
	}
	return false
}

func answer(text string) Result {
	return Result{Kind: KindAnswer, Text: text}
}

func message(kind Kind, text string) Result {
	return Result{Kind: kind, Text: text}
}

func failure(kind Kind, text string, err error) Result {
	return Result{Kind: kind, Text: text, Err: err}
}
