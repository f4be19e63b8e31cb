// Package session keeps one score state per quiz session.
//
// Sessions live in a bounded, expiring LRU. Every operation on a session runs
// under that session's lock, so a ScoreState only ever has one caller at a time.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/core/bank"
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/internal/metrics"
	"github.com/huangsam/cybercompass/schema"
	"go.uber.org/zap"
)

// Errors returned by registry operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrQuizComplete    = errors.New("quiz already complete")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrReflexComplete  = errors.New("reflex drill already complete")
	ErrInvalidPath     = errors.New("invalid quiz path")
	ErrInvalidAction   = errors.New("invalid reflex action")
)

// Options configures a Registry. Zero values fall back to defaults.
type Options struct {
	MaxSessions int
	TTL         time.Duration
	TopGaps     int
	Gaps        core.GapOptions
	Archive     contract.ArchiveStore
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	Now         func() time.Time

	// Perm orders the choices of every question and the calibration draw.
	// It must be safe for concurrent use. Defaults to rand.Perm.
	Perm func(n int) []int
}

// KeepOrder is a Perm that keeps authored order.
func KeepOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Session is the state of one quiz taker.
type Session struct {
	mu sync.Mutex

	id        string
	path      schema.QuizPath
	createdAt time.Time
	questions []bank.PhaseQuestion
	orders    [][]int // orders[i][shown] is the authored index of a choice
	cursor    int
	prior     int // authored index of the last answer, -1 before the first
	state     *core.ScoreState
	drill     core.ReflexDrill
	xp        int
	archived  bool
	ended     atomic.Bool
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Path returns the quiz path of the session.
func (s *Session) Path() schema.QuizPath { return s.path }

// State returns the score state. Callers must hold the session through With.
func (s *Session) State() *core.ScoreState { return s.state }

// XP returns the experience earned so far.
func (s *Session) XP() int { return s.xp }

// Current returns the question awaiting an answer, if any, worded after the
// previous answer. Choices are in authored order.
func (s *Session) Current() (bank.PhaseQuestion, bool) {
	if s.cursor >= len(s.questions) {
		return bank.PhaseQuestion{}, false
	}
	q := s.questions[s.cursor]
	q.Question = q.Follow(s.prior)
	return q, true
}

// shown returns the choice texts of the current question in display order.
func (s *Session) shown(q bank.PhaseQuestion) []string {
	order := s.orders[s.cursor]
	out := make([]string, len(order))
	for i, authored := range order {
		out[i] = q.Choices[authored].Text
	}
	return out
}

// QuizComplete reports whether every question of the path was answered.
func (s *Session) QuizComplete() bool {
	return s.cursor >= len(s.questions)
}

func (s *Session) snapshot() Snapshot {
	cleared, total, misses := s.drill.Progress()
	snap := Snapshot{
		ID:             s.id,
		Path:           s.path,
		CreatedAt:      s.createdAt,
		Answered:       s.cursor,
		Total:          len(s.questions),
		QuizComplete:   s.QuizComplete(),
		XP:             s.xp,
		Rank:           core.RankForXP(s.xp),
		ReflexCleared:  cleared,
		ReflexTotal:    total,
		ReflexMisses:   misses,
		ReflexComplete: s.drill.Completed(),
	}
	if q, ok := s.Current(); ok {
		snap.Question = &QuestionView{
			Number:  s.cursor + 1,
			Phase:   q.Phase,
			Prompt:  q.Prompt,
			Choices: s.shown(q),
		}
	}
	if t, ok := s.drill.Current(); ok {
		snap.Threat = &t
	}
	return snap
}

// QuestionView is a question as shown to a quiz taker, without weights or answers.
type QuestionView struct {
	Number  int          `json:"number"`
	Phase   schema.Phase `json:"phase"`
	Prompt  string       `json:"prompt"`
	Choices []string     `json:"choices"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID             string          `json:"session_id"`
	Path           schema.QuizPath `json:"path"`
	CreatedAt      time.Time       `json:"created_at"`
	Answered       int             `json:"answered"`
	Total          int             `json:"total"`
	QuizComplete   bool            `json:"quiz_complete"`
	XP             int             `json:"xp"`
	Rank           string          `json:"rank"`
	Question       *QuestionView   `json:"question,omitempty"`
	ReflexCleared  int             `json:"reflex_cleared"`
	ReflexTotal    int             `json:"reflex_total"`
	ReflexMisses   int             `json:"reflex_misses"`
	ReflexComplete bool            `json:"reflex_complete"`
	Threat         *core.Threat    `json:"threat,omitempty"`
}

// AnswerResult describes an applied answer.
type AnswerResult struct {
	Phase     schema.Phase `json:"phase"`
	Choice    string       `json:"choice"`
	Correct   *bool        `json:"correct,omitempty"`
	XPAwarded int          `json:"xp_awarded"`
	Session   Snapshot     `json:"session"`
}

// ReflexResult describes an applied reflex action.
type ReflexResult struct {
	Correct   bool     `json:"correct"`
	XPAwarded int      `json:"xp_awarded"`
	Session   Snapshot `json:"session"`
}

// Registry holds the live sessions.
type Registry struct {
	bank     *bank.Bank
	opts     Options
	sessions *expirable.LRU[string, *Session]
	live     atomic.Int64
}

// NewRegistry creates a registry serving questions from b.
func NewRegistry(b *bank.Bank, opts Options) *Registry {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = contract.DefaultMaxSessions
	}
	if opts.TTL <= 0 {
		opts.TTL = contract.DefaultSessionTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Perm == nil {
		opts.Perm = rand.Perm
	}
	r := &Registry{bank: b, opts: opts}
	r.sessions = expirable.NewLRU[string, *Session](opts.MaxSessions, r.onEvict, opts.TTL)
	return r
}

// onEvict runs under the LRU lock for every removal, so it must not call
// back into the LRU.
func (r *Registry) onEvict(id string, s *Session) {
	r.opts.Metrics.SetActive(int(r.live.Add(-1)))
	if !s.ended.Load() {
		r.opts.Logger.Info("session evicted", zap.String("session_id", id))
	}
}

// Len returns the number of live sessions. Expired sessions that have not
// been swept yet are not counted.
func (r *Registry) Len() int {
	n := 0
	// Values skips expired entries and may pad the result with nils.
	for _, s := range r.sessions.Values() {
		if s != nil {
			n++
		}
	}
	return n
}

// Start opens a new session on path. An empty path means explorer.
func (r *Registry) Start(path schema.QuizPath) (Snapshot, error) {
	if path == "" {
		path = schema.ExplorerPath
	}
	if _, ok := schema.ValidQuizPaths[path]; !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	questions := r.bank.Draw(path, r.opts.Perm)
	if len(questions) == 0 {
		return Snapshot{}, fmt.Errorf("%w: %q has no questions", ErrInvalidPath, path)
	}
	orders := make([][]int, len(questions))
	for i, q := range questions {
		orders[i] = r.opts.Perm(len(q.Choices))
	}
	s := &Session{
		id:        uuid.NewString(),
		path:      path,
		createdAt: r.opts.Now(),
		questions: questions,
		orders:    orders,
		prior:     -1,
		state:     core.NewScoreState(),
	}
	r.live.Add(1)
	r.sessions.Add(s.id, s)
	r.opts.Metrics.SessionStarted(string(path))
	r.opts.Metrics.SetActive(r.Len())
	r.opts.Logger.Info("session started", zap.String("session_id", s.id), zap.String("path", string(path)))
	return s.snapshot(), nil
}

// With runs fn while holding the session lock.
func (r *Registry) With(id string, fn func(*Session) error) error {
	s, ok := r.sessions.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Get returns a snapshot of the session.
func (r *Registry) Get(id string) (Snapshot, error) {
	var snap Snapshot
	err := r.With(id, func(s *Session) error {
		snap = s.snapshot()
		return nil
	})
	return snap, err
}

// Answer applies a raw choice ("b" or "2") to the current question. The
// choice refers to the order the question was shown in.
func (r *Registry) Answer(id, raw string) (AnswerResult, error) {
	var res AnswerResult
	err := r.With(id, func(s *Session) error {
		q, ok := s.Current()
		if !ok {
			return ErrQuizComplete
		}
		idx, ok := core.ParseChoiceIndex(raw, len(q.Choices))
		if !ok {
			return fmt.Errorf("%w: %q for %d choices", ErrInvalidChoice, raw, len(q.Choices))
		}

		authored := s.orders[s.cursor][idx]
		factor := core.PathFactor(s.path)

		res.Phase = q.Phase
		res.Choice = core.ChoiceLabel(idx)
		if q.Phase == schema.TechnicalPhase {
			correct := q.IsCorrect(authored)
			s.state.AddTechnicalResult(correct)
			res.Correct = &correct
			if correct {
				res.XPAwarded += core.XPTechnicalCorrect * factor
			}
		} else {
			s.state.AddScaledContribution(q.Choices[authored].Weights, float64(factor))
			res.XPAwarded += core.XPInstinctChoice * factor
		}
		s.prior = authored
		s.cursor++
		if s.QuizComplete() {
			res.XPAwarded += core.PathCompletionXP(s.path)
		}
		s.xp += res.XPAwarded
		r.opts.Metrics.Answer(string(q.Phase))
		res.Session = s.snapshot()
		return nil
	})
	return res, err
}

// Reflex applies an action to the current threat of the drill. Clearing the
// last threat applies the completion bonus.
func (r *Registry) Reflex(id string, action schema.ReflexAction) (ReflexResult, error) {
	if _, ok := schema.ValidReflexActions[action]; !ok {
		return ReflexResult{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	var res ReflexResult
	err := r.With(id, func(s *Session) error {
		if s.drill.Cleared() {
			return ErrReflexComplete
		}
		factor := core.PathFactor(s.path)
		res.Correct = s.drill.ActScaled(s.state, action, float64(factor))
		if res.Correct {
			res.XPAwarded += core.XPReflexCorrect * factor
		}
		if s.drill.Complete(s.state) {
			res.XPAwarded += core.XPReflexLabComplete
		}
		s.xp += res.XPAwarded
		r.opts.Metrics.Reflex(res.Correct)
		res.Session = s.snapshot()
		return nil
	})
	return res, err
}

// Gaps returns the capability gap analysis of the session.
func (r *Registry) Gaps(id string) (schema.GapAnalysis, error) {
	var gaps schema.GapAnalysis
	err := r.With(id, func(s *Session) error {
		gaps = core.CalculateGaps(s.state, r.opts.Gaps)
		return nil
	})
	return gaps, err
}

// Dossier builds the dossier of the session. The first dossier of a finished
// quiz is recorded in the archive when one is configured.
func (r *Registry) Dossier(id string) (schema.Dossier, error) {
	var d schema.Dossier
	err := r.With(id, func(s *Session) error {
		d = core.BuildDossier(s.state, core.DossierOptions{
			SessionID:      s.id,
			Path:           s.path,
			XP:             s.xp,
			ReflexComplete: s.drill.Completed(),
			TopGaps:        r.opts.TopGaps,
			Gaps:           r.opts.Gaps,
			Now:            r.opts.Now(),
		})
		r.opts.Metrics.Dossier(string(d.Archetype.ID))
		if r.opts.Archive != nil && s.QuizComplete() && !s.archived {
			if _, err := r.opts.Archive.Record(d); err != nil {
				r.opts.Logger.Warn("failed to archive dossier", zap.String("session_id", s.id), zap.Error(err))
				return nil
			}
			s.archived = true
		}
		return nil
	})
	return d, err
}

// End removes the session.
func (r *Registry) End(id string) error {
	s, ok := r.sessions.Peek(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.ended.Store(true)
	if !r.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	r.opts.Metrics.SessionEnded()
	r.opts.Metrics.SetActive(r.Len())
	r.opts.Logger.Info("session ended", zap.String("session_id", id))
	return nil
}

// Questions returns the ordered questions of a path without answers.
// Choices are listed in authored order and branches are not applied.
func (r *Registry) Questions(path schema.QuizPath) []QuestionView {
	qs := r.bank.Path(path)
	out := make([]QuestionView, 0, len(qs))
	for i, q := range qs {
		out = append(out, QuestionView{
			Number:  i + 1,
			Phase:   q.Phase,
			Prompt:  q.Prompt,
			Choices: choiceTexts(q),
		})
	}
	return out
}

func choiceTexts(q bank.PhaseQuestion) []string {
	out := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		out[i] = c.Text
	}
	return out
}
