// Package bank loads the quiz questions for each phase.
package bank

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/huangsam/cybercompass/schema"
	"gopkg.in/yaml.v3"
)

// Bounds on the number of choices per question.
const (
	MinChoices = 2
	MaxChoices = 10
)

// CalibrationBlock is the size of each of the three calibration blocks.
const CalibrationBlock = 10

//go:embed bank.yaml
var embedded []byte

// ErrInvalidBank is wrapped by every validation failure.
var ErrInvalidBank = errors.New("invalid question bank")

// Choice is a single answer option.
type Choice struct {
	Text    string             `yaml:"text" json:"text"`
	Weights map[string]float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// Branch rewords a question after the previous answer. Branches[i] applies
// when the previous question was answered with choice i; weights are kept.
type Branch struct {
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Choices []string `yaml:"choices" json:"choices"`
}

// Question is a prompt with ordered choices. CorrectIndex is set only for
// knowledge questions.
type Question struct {
	Prompt       string   `yaml:"prompt" json:"prompt"`
	Choices      []Choice `yaml:"choices" json:"choices"`
	CorrectIndex *int     `yaml:"correct_index,omitempty" json:"-"`
	Branches     []Branch `yaml:"branches,omitempty" json:"-"`
}

// IsCorrect reports whether idx is the correct answer of a knowledge question.
func (q Question) IsCorrect(idx int) bool {
	return q.CorrectIndex != nil && *q.CorrectIndex == idx
}

// Follow returns the question as worded after the previous answer prior.
// Without a branch for prior the question is returned unchanged.
func (q Question) Follow(prior int) Question {
	if prior < 0 || prior >= len(q.Branches) {
		return q
	}
	br := q.Branches[prior]
	out := q
	out.Prompt = br.Prompt
	out.Choices = make([]Choice, len(q.Choices))
	for i, c := range q.Choices {
		out.Choices[i] = Choice{Text: br.Choices[i], Weights: c.Weights}
	}
	out.Branches = nil
	return out
}

// PhaseQuestion is a question tagged with the phase it belongs to.
type PhaseQuestion struct {
	Phase schema.Phase `json:"phase"`
	Question
}

// Bank holds the questions of every phase. Instinct, technical and deep are
// required; the other sections are optional and only feed their own paths.
type Bank struct {
	Instinct         []Question `yaml:"instinct"`
	ExplorerInstinct []Question `yaml:"explorer_instinct"`
	Technical        []Question `yaml:"technical"`
	Deep             []Question `yaml:"deep"`
	TKS              []Question `yaml:"tks"`
	Operator         []Question `yaml:"operator"`
	Validation       []Question `yaml:"validation"`
}

// Load returns the embedded question bank.
func Load() (*Bank, error) {
	return Parse(embedded)
}

// LoadFile reads and validates a question bank from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks prompts, choice counts and knowledge answers.
// Weight keys are not checked; unknown categories are ignored when scoring.
func (b *Bank) Validate() error {
	phases := []struct {
		name      string
		questions []Question
		knowledge bool
		optional  bool
	}{
		{"instinct", b.Instinct, false, false},
		{"explorer_instinct", b.ExplorerInstinct, false, true},
		{"technical", b.Technical, true, false},
		{"deep", b.Deep, false, false},
		{"tks", b.TKS, false, true},
		{"operator", b.Operator, false, true},
		{"validation", b.Validation, false, true},
	}
	for _, p := range phases {
		if len(p.questions) == 0 && !p.optional {
			return fmt.Errorf("%w: phase %s has no questions", ErrInvalidBank, p.name)
		}
		for i, q := range p.questions {
			if q.Prompt == "" {
				return fmt.Errorf("%w: %s question %d has no prompt", ErrInvalidBank, p.name, i+1)
			}
			if n := len(q.Choices); n < MinChoices || n > MaxChoices {
				return fmt.Errorf("%w: %s question %d has %d choices", ErrInvalidBank, p.name, i+1, n)
			}
			if p.knowledge && q.CorrectIndex == nil {
				return fmt.Errorf("%w: %s question %d has no correct_index", ErrInvalidBank, p.name, i+1)
			}
			if q.CorrectIndex != nil && (*q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Choices)) {
				return fmt.Errorf("%w: %s question %d has correct_index %d out of range", ErrInvalidBank, p.name, i+1, *q.CorrectIndex)
			}
			if len(q.Branches) > len(q.Choices) {
				return fmt.Errorf("%w: %s question %d has more branches than choices", ErrInvalidBank, p.name, i+1)
			}
			for j, br := range q.Branches {
				if br.Prompt == "" || len(br.Choices) != len(q.Choices) {
					return fmt.Errorf("%w: %s question %d branch %d must have a prompt and %d choices", ErrInvalidBank, p.name, i+1, j+1, len(q.Choices))
				}
			}
		}
	}
	return nil
}

// Path returns the ordered questions of a quiz path. The calibration
// validation block takes the first questions of the pool.
func (b *Bank) Path(path schema.QuizPath) []PhaseQuestion {
	return b.Draw(path, nil)
}

// Draw returns the ordered questions of a quiz path, sampling the calibration
// validation block in the order given by perm. A nil perm keeps pool order.
//
//   - explorer: instinct, explorer instinct, technical
//   - specialist: instinct, technical, deep, tks
//   - operator: the missions
//   - calibration: ten instinct, ten validation, ten technical
func (b *Bank) Draw(path schema.QuizPath, perm func(n int) []int) []PhaseQuestion {
	switch path {
	case schema.SpecialistPath:
		out := tag(nil, schema.InstinctPhase, b.Instinct)
		out = tag(out, schema.TechnicalPhase, b.Technical)
		out = tag(out, schema.DeepPhase, b.Deep)
		return tag(out, schema.TKSPhase, b.TKS)
	case schema.OperatorPath:
		return tag(nil, schema.MissionPhase, b.Operator)
	case schema.CalibrationPath:
		instinct := append(slices.Clone(b.Instinct), b.ExplorerInstinct...)
		out := tag(nil, schema.InstinctPhase, head(instinct, CalibrationBlock))
		out = tag(out, schema.ValidationPhase, sample(b.Validation, CalibrationBlock, perm))
		return tag(out, schema.TechnicalPhase, head(b.Technical, CalibrationBlock))
	default:
		out := tag(nil, schema.InstinctPhase, b.Instinct)
		out = tag(out, schema.InstinctPhase, b.ExplorerInstinct)
		return tag(out, schema.TechnicalPhase, b.Technical)
	}
}

func head(qs []Question, n int) []Question {
	return qs[:min(n, len(qs))]
}

func sample(pool []Question, n int, perm func(n int) []int) []Question {
	if perm == nil {
		return head(pool, n)
	}
	out := make([]Question, 0, min(n, len(pool)))
	for _, i := range perm(len(pool)) {
		if len(out) == n {
			break
		}
		out = append(out, pool[i])
	}
	return out
}

func tag(out []PhaseQuestion, phase schema.Phase, qs []Question) []PhaseQuestion {
	for _, q := range qs {
		out = append(out, PhaseQuestion{Phase: phase, Question: q})
	}
	return out
}
