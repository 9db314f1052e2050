package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Recorded failure messages. These are stored as assistant turns so the
// transcript shows what happened; the user's question is never lost.
const (
	failureContextTooLong = "The selected documents exceed the model's context window even after truncation. Narrow the selection or lower the token budget, then ask again."
	failureRateLimited    = "The model is rate limiting requests right now. Your question was saved; try again in a minute."
	failureGeneric        = "The model call failed. Your question was saved; try again."
)

// ChatService runs the ask loop: context assembly, the model call, and
// session bookkeeping around both.
type ChatService struct {
	llm        driven.LLMService
	sessions   driven.SessionStore
	prompts    driven.PromptStore
	contextSvc driving.ContextService
	workspace  *Workspace
	budget     int
	yearFilter bool
}

// NewChatService creates a new chat service. llm may be nil; Ask then
// returns domain.ErrLLMUnavailable and Ready reports false.
func NewChatService(llm driven.LLMService, sessions driven.SessionStore, prompts driven.PromptStore, contextSvc driving.ContextService, workspace *Workspace, budget int) *ChatService {
	if budget <= 0 {
		budget = domain.DefaultTokenBudget
	}
	return &ChatService{
		llm:        llm,
		sessions:   sessions,
		prompts:    prompts,
		contextSvc: contextSvc,
		workspace:  workspace,
		budget:     budget,
		yearFilter: true,
	}
}

// SetYearFilter toggles year-based relevance narrowing. On by default.
func (s *ChatService) SetYearFilter(enabled bool) {
	s.yearFilter = enabled
}

// Ready reports whether a model client is configured.
func (s *ChatService) Ready() bool {
	return s.llm != nil
}

// Ask records the question, calls the model with assembled context and
// prior history, and records the answer or a failure message. The
// session is persisted after the question and again after the answer,
// so a crash mid-call loses at most the answer.
func (s *ChatService) Ask(ctx context.Context, question string) (*driving.AskResult, error) {
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	session := s.workspace.Session()
	if session == nil {
		return nil, fmt.Errorf("%w: no active session", domain.ErrInvalidInput)
	}
	history := append([]domain.Message(nil), session.Messages...)

	session.Messages = append(session.Messages, domain.Message{Role: domain.RoleUser, Content: question})
	if err := s.sessions.SaveMessages(ctx, session.ID, session.Messages); err != nil {
		return nil, fmt.Errorf("saving question: %w", err)
	}

	assembled, err := s.assembled(ctx, question)
	if err != nil {
		return nil, err
	}

	result := &driving.AskResult{
		SessionID:        session.ID,
		ContextTruncated: assembled.Truncated,
	}

	answer, err := s.llm.Ask(ctx, question, s.withComparisonHint(assembled.Text), history)
	if err != nil {
		logger.Warn("model call failed: %v", err)
		result.Failed = true
		result.Answer = failureMessage(err)
	} else {
		result.Answer = answer
	}

	session.Messages = append(session.Messages, domain.Message{Role: domain.RoleAssistant, Content: result.Answer})
	if err := s.sessions.SaveMessages(ctx, session.ID, session.Messages); err != nil {
		return nil, fmt.Errorf("saving answer: %w", err)
	}
	return result, nil
}

// assembled returns document context for the question. Questions naming
// a year get a query-narrowed assembly and bypass the cache; the rest
// share the workspace's cached full assembly.
func (s *ChatService) assembled(ctx context.Context, question string) (domain.AssembledContext, error) {
	selected := s.workspace.Selection()

	if s.yearFilter && yearPattern.MatchString(question) {
		assembled, err := s.contextSvc.AssembleForQuery(ctx, selected, question, s.budget)
		if err != nil {
			return domain.AssembledContext{}, fmt.Errorf("assembling context: %w", err)
		}
		if !assembled.IsEmpty() {
			return assembled, nil
		}
		// No artifact matched the year; fall back to the full set
		// rather than answering from nothing.
	}

	if cached := s.workspace.CachedContext(); cached != nil {
		return *cached, nil
	}
	assembled, err := s.contextSvc.Assemble(ctx, selected, s.budget)
	if err != nil {
		return domain.AssembledContext{}, fmt.Errorf("assembling context: %w", err)
	}
	s.workspace.SetCachedContext(assembled)
	return assembled, nil
}

// withComparisonHint prepends the comparison prompt when more than one
// group is selected, nudging the model toward side-by-side answers.
func (s *ChatService) withComparisonHint(documentContext string) string {
	groups := s.workspace.Selection()
	if len(groups) < 2 || s.prompts == nil {
		return documentContext
	}
	hint, err := s.prompts.Load(driven.PromptComparisonHint)
	if err != nil || hint == "" {
		return documentContext
	}
	return fmt.Sprintf(hint, len(groups)) + "\n\n" + documentContext
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrContextTooLong):
		return failureContextTooLong
	case errors.Is(err, domain.ErrRateLimited):
		return failureRateLimited
	default:
		return failureGeneric
	}
}
