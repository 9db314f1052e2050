package driving

import "context"

// ChatService routes questions to the model with assembled context and
// records every turn in the current session.
type ChatService interface {
	// Ask appends the question to the session, calls the model with
	// the workspace's context and prior history, appends the answer
	// (or a recorded failure message when the call fails), and
	// persists the session. The user's turn survives model failure.
	Ask(ctx context.Context, question string) (*AskResult, error)

	// Ready reports whether a model client is configured.
	Ready() bool
}

// AskResult is the outcome of one question.
type AskResult struct {
	// Answer is the assistant's turn as recorded in the session. On
	// model failure it holds the recorded failure message.
	Answer string

	// Failed reports whether the model call failed and Answer is a
	// recorded failure message rather than a real answer.
	Failed bool

	// ContextTruncated reports whether the document context was cut
	// to the token budget; callers surface a warning.
	ContextTruncated bool

	// SessionID is the session the turn was recorded under.
	SessionID string
}
