package session

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/core/bank"
	"github.com/huangsam/cybercompass/internal/logger"
	"github.com/huangsam/cybercompass/internal/metrics"
	"github.com/huangsam/cybercompass/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const smallBank = `
instinct:
  - prompt: Pick a side
    choices:
      - text: Defend
        weights: {PR: 0.9, IN: 0.1}
      - text: Build
        weights: {SP: 1.0}
technical:
  - prompt: Which port is SSH?
    correct_index: 1
    choices:
      - text: "21"
      - text: "22"
      - text: "23"
deep:
  - prompt: Incident at 3am
    choices:
      - text: Hunt
        weights: {Investigate: 0.7, AN: 0.3}
      - text: Escalate
        weights: {OV: 1.0}
`

type fakeArchive struct {
	records []schema.Dossier
	err     error
}

func (f *fakeArchive) Record(d schema.Dossier) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.records = append(f.records, d)
	return int64(len(f.records)), nil
}

func (f *fakeArchive) GetStatus() (schema.ArchiveStatus, error)           { return schema.ArchiveStatus{}, nil }
func (f *fakeArchive) GetAllDossiers() ([]schema.DossierRecord, error)    { return nil, nil }
func (f *fakeArchive) GetAllScores() ([]schema.DossierScoreRecord, error) { return nil, nil }
func (f *fakeArchive) Close() error                                       { return nil }

func newRegistry(t *testing.T, opts Options) *Registry {
	t.Helper()
	b, err := bank.Parse([]byte(smallBank))
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger(t)
	}
	if opts.Perm == nil {
		opts.Perm = KeepOrder
	}
	return NewRegistry(b, opts)
}

func reverse(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

func rotate(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = (i + 1) % n
	}
	return out
}

// activeGauge reads the active session gauge, or -1 when it cannot be gathered.
func activeGauge(reg *prometheus.Registry) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() == "cybercompass_session_active" {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return -1
}

func TestStart(t *testing.T) {
	r := newRegistry(t, Options{})

	snap, err := r.Start("")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, schema.ExplorerPath, snap.Path)
	assert.Equal(t, 2, snap.Total)
	require.NotNil(t, snap.Question)
	assert.Equal(t, 1, snap.Question.Number)
	assert.Equal(t, schema.InstinctPhase, snap.Question.Phase)
	assert.Equal(t, []string{"Defend", "Build"}, snap.Question.Choices)
	require.NotNil(t, snap.Threat)
	assert.Equal(t, core.ReflexThreats[0].Text, snap.Threat.Text)
	assert.Equal(t, 1, r.Len())

	spec, err := r.Start(schema.SpecialistPath)
	require.NoError(t, err)
	assert.Equal(t, 3, spec.Total)
	assert.NotEqual(t, snap.ID, spec.ID)

	_, err = r.Start("ninja")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = r.Start(schema.OperatorPath)
	assert.ErrorIs(t, err, ErrInvalidPath, "a path without questions cannot start")
}

func TestAnswer(t *testing.T) {
	r := newRegistry(t, Options{})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	t.Run("invalid choice keeps the cursor", func(t *testing.T) {
		_, err := r.Answer(snap.ID, "z")
		assert.ErrorIs(t, err, ErrInvalidChoice)
		_, err = r.Answer(snap.ID, "3")
		assert.ErrorIs(t, err, ErrInvalidChoice)

		got, err := r.Get(snap.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Answered)
	})

	t.Run("weighted answer", func(t *testing.T) {
		res, err := r.Answer(snap.ID, "a")
		require.NoError(t, err)
		assert.Equal(t, schema.InstinctPhase, res.Phase)
		assert.Equal(t, "a", res.Choice)
		assert.Nil(t, res.Correct)
		assert.Equal(t, core.XPInstinctChoice, res.XPAwarded)
		assert.Equal(t, 1, res.Session.Answered)
	})

	t.Run("technical answer finishes the path", func(t *testing.T) {
		res, err := r.Answer(snap.ID, "2")
		require.NoError(t, err)
		require.NotNil(t, res.Correct)
		assert.True(t, *res.Correct)
		assert.Equal(t, core.XPTechnicalCorrect+core.XPExplorerComplete, res.XPAwarded)
		assert.True(t, res.Session.QuizComplete)
		assert.Nil(t, res.Session.Question)
		assert.Equal(t, 70, res.Session.XP)
		assert.Equal(t, "Apprentice", res.Session.Rank)
	})

	t.Run("no questions left", func(t *testing.T) {
		_, err := r.Answer(snap.ID, "a")
		assert.ErrorIs(t, err, ErrQuizComplete)
	})

	require.NoError(t, r.With(snap.ID, func(s *Session) error {
		scores := s.State().CategoryScores()
		assert.InDelta(t, 1.0, scores[schema.ProtectAndDefend], 1e-9)
		correct, total := s.State().TechnicalResults()
		assert.Equal(t, 1, correct)
		assert.Equal(t, 1, total)
		assert.Equal(t, 1, s.State().KnowledgeLevel())
		return nil
	}))
}

func TestAnswerWrongTechnical(t *testing.T) {
	r := newRegistry(t, Options{})
	snap, err := r.Start(schema.SpecialistPath)
	require.NoError(t, err)

	_, err = r.Answer(snap.ID, "b")
	require.NoError(t, err)
	res, err := r.Answer(snap.ID, "a")
	require.NoError(t, err)
	require.NotNil(t, res.Correct)
	assert.False(t, *res.Correct)
	assert.Zero(t, res.XPAwarded)

	res, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, schema.DeepPhase, res.Phase)
	assert.Equal(t, 2*core.XPInstinctChoice+core.XPSpecialistComplete, res.XPAwarded)
}

func TestSpecialistCountsDouble(t *testing.T) {
	r := newRegistry(t, Options{})
	snap, err := r.Start(schema.SpecialistPath)
	require.NoError(t, err)

	res, err := r.Answer(snap.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, 2*core.XPInstinctChoice, res.XPAwarded)
	res, err = r.Answer(snap.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, 2*core.XPTechnicalCorrect, res.XPAwarded)

	rr, err := r.Reflex(snap.ID, core.ReflexThreats[0].Action)
	require.NoError(t, err)
	assert.Equal(t, 2*core.XPReflexCorrect, rr.XPAwarded)

	require.NoError(t, r.With(snap.ID, func(s *Session) error {
		scores := s.State().CategoryScores()
		// 0.1 baseline, 2 x 0.9 from the answer, 2 x 0.1 from the threat
		assert.InDelta(t, 2.1, scores[schema.ProtectAndDefend], 1e-9)
		assert.InDelta(t, 0.3, scores[schema.Investigate], 1e-9)
		return nil
	}))
}

func TestShuffledChoices(t *testing.T) {
	r := newRegistry(t, Options{Perm: reverse})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Build", "Defend"}, snap.Question.Choices)

	res, err := r.Answer(snap.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", res.Choice)
	assert.Equal(t, []string{"23", "22", "21"}, res.Session.Question.Choices)

	res, err = r.Answer(snap.ID, "b")
	require.NoError(t, err)
	require.NotNil(t, res.Correct)
	assert.True(t, *res.Correct, "the shown position maps back to the authored answer")

	require.NoError(t, r.With(snap.ID, func(s *Session) error {
		assert.Equal(t, schema.SecurelyProvision, s.State().DominantAptitude())
		return nil
	}))
}

func TestDefaultPermShuffles(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)
	r := NewRegistry(b, Options{})

	moved := false
	for range 20 {
		snap, err := r.Start(schema.ExplorerPath)
		require.NoError(t, err)
		require.NoError(t, r.With(snap.ID, func(s *Session) error {
			for _, order := range s.orders {
				moved = moved || !slices.Equal(KeepOrder(len(order)), order)
			}
			return nil
		}))
	}
	assert.True(t, moved)
}

func TestAlwaysFirstChoiceStaysEntryLevel(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)

	perms := map[string]func(int) []int{"authored": KeepOrder, "reversed": reverse, "rotated": rotate}
	for name, perm := range perms {
		t.Run(name, func(t *testing.T) {
			r := NewRegistry(b, Options{Perm: perm})
			snap, err := r.Start(schema.ExplorerPath)
			require.NoError(t, err)
			for range snap.Total {
				_, err := r.Answer(snap.ID, "a")
				require.NoError(t, err)
			}
			d, err := r.Dossier(snap.ID)
			require.NoError(t, err)
			assert.Equal(t, schema.EntryLevel, d.KnowledgeLevel)
			require.NoError(t, r.With(snap.ID, func(s *Session) error {
				correct, total := s.State().TechnicalResults()
				assert.Equal(t, 10, total)
				assert.Less(t, correct, 5)
				return nil
			}))
		})
	}
}

func TestOperatorBranches(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)
	r := NewRegistry(b, Options{Perm: KeepOrder})
	snap, err := r.Start(schema.OperatorPath)
	require.NoError(t, err)
	assert.Equal(t, 12, snap.Total)
	assert.Equal(t, schema.MissionPhase, snap.Question.Phase)
	assert.Equal(t, b.Operator[0].Prompt, snap.Question.Prompt)

	res, err := r.Answer(snap.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, b.Operator[1].Branches[1].Prompt, res.Session.Question.Prompt)
	assert.Equal(t, b.Operator[1].Branches[1].Choices, res.Session.Question.Choices)

	res, err = r.Answer(snap.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, b.Operator[2].Branches[2].Prompt, res.Session.Question.Prompt)

	res, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, b.Operator[3].Prompt, res.Session.Question.Prompt)

	xp := res.Session.XP
	for res.Session.Question != nil {
		res, err = r.Answer(snap.ID, "a")
		require.NoError(t, err)
	}
	assert.Equal(t, 12*2*core.XPInstinctChoice+core.XPOperatorComplete, res.Session.XP)
	assert.Equal(t, 3*2*core.XPInstinctChoice, xp)
}

func TestOperatorBranchFollowsShownChoice(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)
	r := NewRegistry(b, Options{Perm: reverse})
	snap, err := r.Start(schema.OperatorPath)
	require.NoError(t, err)

	// "a" is shown first but is the last authored choice
	res, err := r.Answer(snap.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, b.Operator[1].Branches[2].Prompt, res.Session.Question.Prompt)
}

func TestCalibration(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)
	r := NewRegistry(b, Options{Perm: reverse})
	snap, err := r.Start(schema.CalibrationPath)
	require.NoError(t, err)
	assert.Equal(t, 30, snap.Total)

	var phases []schema.Phase
	var prompts []string
	res := AnswerResult{Session: snap}
	for res.Session.Question != nil {
		phases = append(phases, res.Session.Question.Phase)
		prompts = append(prompts, res.Session.Question.Prompt)
		res, err = r.Answer(snap.ID, "a")
		require.NoError(t, err)
	}
	assert.Equal(t, schema.InstinctPhase, phases[9])
	assert.Equal(t, schema.ValidationPhase, phases[10])
	assert.Equal(t, schema.TechnicalPhase, phases[20])
	assert.Equal(t, b.Validation[24].Prompt, prompts[10], "the validation block is drawn with Perm")
	assert.Equal(t, b.ExplorerInstinct[4].Prompt, prompts[9])

	correct := 0
	require.NoError(t, r.With(snap.ID, func(s *Session) error {
		correct, _ = s.State().TechnicalResults()
		return nil
	}))
	assert.Equal(t, 20*core.XPInstinctChoice+correct*core.XPTechnicalCorrect, res.Session.XP, "calibration has no completion bonus")
}

func TestReflex(t *testing.T) {
	r := newRegistry(t, Options{})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	_, err = r.Reflex(snap.ID, "PUNCH")
	assert.ErrorIs(t, err, ErrInvalidAction)

	var xp int
	for i, threat := range core.ReflexThreats {
		wrong := schema.DropAction
		if threat.Action == schema.DropAction {
			wrong = schema.FreezeAction
		}
		res, err := r.Reflex(snap.ID, wrong)
		require.NoError(t, err)
		assert.False(t, res.Correct)
		assert.Zero(t, res.XPAwarded)
		assert.Equal(t, i, res.Session.ReflexCleared)

		res, err = r.Reflex(snap.ID, threat.Action)
		require.NoError(t, err)
		assert.True(t, res.Correct)
		xp += res.XPAwarded
		if i == len(core.ReflexThreats)-1 {
			assert.Equal(t, core.XPReflexCorrect+core.XPReflexLabComplete, res.XPAwarded)
			assert.True(t, res.Session.ReflexComplete)
			assert.Nil(t, res.Session.Threat)
			assert.Equal(t, len(core.ReflexThreats), res.Session.ReflexMisses)
		} else {
			assert.Equal(t, core.XPReflexCorrect, res.XPAwarded)
		}
	}
	assert.Equal(t, 90, xp)

	_, err = r.Reflex(snap.ID, schema.DropAction)
	assert.ErrorIs(t, err, ErrReflexComplete)

	d, err := r.Dossier(snap.ID)
	require.NoError(t, err)
	assert.True(t, d.ReflexComplete)
	assert.Equal(t, 90, d.XP)
}

func TestDossierArchive(t *testing.T) {
	archive := &fakeArchive{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newRegistry(t, Options{Archive: archive, Now: func() time.Time { return now }})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	d, err := r.Dossier(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, d.SessionID)
	assert.Equal(t, now, d.GeneratedAt)
	assert.Empty(t, archive.records, "unfinished quizzes are not archived")

	_, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)
	_, err = r.Answer(snap.ID, "b")
	require.NoError(t, err)

	d, err = r.Dossier(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.GuardianArchetype, d.Archetype.ID)
	require.Len(t, archive.records, 1)

	_, err = r.Dossier(snap.ID)
	require.NoError(t, err)
	assert.Len(t, archive.records, 1)
}

func TestDossierArchiveFailure(t *testing.T) {
	archive := &fakeArchive{err: errors.New("disk full")}
	r := newRegistry(t, Options{Archive: archive})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	_, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)
	_, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)

	_, err = r.Dossier(snap.ID)
	assert.NoError(t, err)
}

func TestGaps(t *testing.T) {
	r := newRegistry(t, Options{Gaps: core.GapOptions{MaxDeployments: 2}})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	_, err = r.Answer(snap.ID, "a")
	require.NoError(t, err)

	gaps, err := r.Gaps(snap.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(gaps.Deployments), 2)
	assert.NotEmpty(t, gaps.TKSAreasBelow)
}

func TestEndAndNotFound(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRegistry(t, Options{Metrics: metrics.MustNewMetrics(reg)})
	snap, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	require.NoError(t, r.End(snap.ID))
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, r.End(snap.ID), ErrSessionNotFound)

	_, err = r.Get(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Answer(snap.ID, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Reflex(snap.ID, schema.DropAction)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Dossier(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Gaps(snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	n, err := testutil.GatherAndCount(reg, "cybercompass_session_started_total", "cybercompass_session_ended_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExpiry(t *testing.T) {
	obs, logs := observer.New(zap.InfoLevel)
	reg := prometheus.NewRegistry()
	r := newRegistry(t, Options{
		TTL:     50 * time.Millisecond,
		Metrics: metrics.MustNewMetrics(reg),
		Logger:  zap.New(obs),
	})
	first, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	_, err = r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2.0, activeGauge(reg))

	require.NoError(t, r.End(first.ID))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1.0, activeGauge(reg))
	assert.Equal(t, 1, logs.FilterMessage("session ended").Len())
	assert.Zero(t, logs.FilterMessage("session evicted").Len(), "ending a session is not an eviction")

	time.Sleep(70 * time.Millisecond)
	assert.Zero(t, r.Len(), "expired sessions are not counted")
	require.Eventually(t, func() bool {
		return activeGauge(reg) == 0 && logs.FilterMessage("session evicted").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEviction(t *testing.T) {
	r := newRegistry(t, Options{MaxSessions: 1})
	first, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	second, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Len())
	_, err = r.Get(first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(second.ID)
	assert.NoError(t, err)
}

func TestSessionIsolation(t *testing.T) {
	r := newRegistry(t, Options{})
	a, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)
	b, err := r.Start(schema.ExplorerPath)
	require.NoError(t, err)

	_, err = r.Answer(a.ID, "a")
	require.NoError(t, err)
	_, err = r.Answer(b.ID, "b")
	require.NoError(t, err)

	da, err := r.Dossier(a.ID)
	require.NoError(t, err)
	db, err := r.Dossier(b.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ProtectAndDefend, da.Dominant)
	assert.Equal(t, schema.SecurelyProvision, db.Dominant)
}

func TestConcurrentAnswers(t *testing.T) {
	b, err := bank.Load()
	require.NoError(t, err)
	r := NewRegistry(b, Options{})
	snap, err := r.Start(schema.SpecialistPath)
	require.NoError(t, err)

	const workers = 64
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, done int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Answer(snap.ID, "a")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrQuizComplete):
				done++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, snap.Total, ok)
	assert.Equal(t, workers-snap.Total, done)
	got, err := r.Get(snap.ID)
	require.NoError(t, err)
	assert.True(t, got.QuizComplete)
}

func TestQuestions(t *testing.T) {
	r := newRegistry(t, Options{})
	qs := r.Questions(schema.SpecialistPath)
	require.Len(t, qs, 3)
	assert.Equal(t, 3, qs[2].Number)
	assert.Equal(t, schema.DeepPhase, qs[2].Phase)
	assert.Equal(t, []string{"21", "22", "23"}, qs[1].Choices)
}
