package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// Workspace carries the per-interaction mutable state: the current
// session, the selected groups, and the cached assembled context. It is
// constructed once per interaction (CLI command, TUI run, MCP session)
// and threaded explicitly to handlers instead of living in package
// globals. The cache and selection are working-set state only; nothing
// here carries a persistence guarantee of its own.
type Workspace struct {
	mu       sync.Mutex
	session  *domain.Session
	selected []string
	cached   *domain.AssembledContext
}

// NewWorkspace creates a workspace for the given session and selection.
func NewWorkspace(session *domain.Session, selected []string) *Workspace {
	ws := &Workspace{session: session}
	ws.SetSelection(selected)
	return ws
}

// Session returns the current session.
func (w *Workspace) Session() *domain.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// SetSession redirects the workspace to a different session.
func (w *Workspace) SetSession(session *domain.Session) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session = session
}

// Selection returns the selected group names, sorted.
func (w *Workspace) Selection() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.selected))
	copy(out, w.selected)
	return out
}

// SetSelection replaces the selected groups and invalidates the cached
// context. An empty selection means "all groups".
func (w *Workspace) SetSelection(selected []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = make([]string, len(selected))
	copy(w.selected, selected)
	sort.Strings(w.selected)
	w.cached = nil
}

// CachedContext returns the cached assembled context, or nil when the
// cache is cold or has been invalidated.
func (w *Workspace) CachedContext() *domain.AssembledContext {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cached
}

// SetCachedContext stores an assembled context for reuse.
func (w *Workspace) SetCachedContext(c domain.AssembledContext) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cached = &c
}

// InvalidateContext drops the cached context. Called when the selection
// changes, when artifacts mutate, or on explicit refresh.
func (w *Workspace) InvalidateContext() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cached = nil
}
