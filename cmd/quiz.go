package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/cybercompass/core"
	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/internal/outwriter"
	"github.com/huangsam/cybercompass/internal/session"
	"github.com/huangsam/cybercompass/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// errNoInput is returned when a prompt hits the end of its input.
var errNoInput = errors.New("no more input")

// quizRunner drives one session through the quiz and the reflex drill.
// Scripted answers and actions are used first; prompts take over only when
// interactive is set.
type quizRunner struct {
	reg         *session.Registry
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	answers     []string
	reflex      []schema.ReflexAction
}

// run plays a full session on path and returns its dossier.
func (r *quizRunner) run(path schema.QuizPath) (schema.Dossier, error) {
	snap, err := r.reg.Start(path)
	if err != nil {
		return schema.Dossier{}, err
	}
	defer func() { _ = r.reg.End(snap.ID) }()

	if err := r.answerAll(snap); err != nil {
		return schema.Dossier{}, err
	}
	if err := r.runDrill(snap.ID); err != nil {
		return schema.Dossier{}, err
	}
	return r.reg.Dossier(snap.ID)
}

func (r *quizRunner) answerAll(snap session.Snapshot) error {
	for snap.Question != nil {
		raw, ok, err := r.nextAnswer(snap)
		if err != nil {
			return err
		}
		if !ok {
			contract.LogWarn("quiz ended early", fmt.Errorf("answered %d of %d questions", snap.Answered, snap.Total))
			return nil
		}
		res, err := r.reg.Answer(snap.ID, raw)
		if errors.Is(err, session.ErrInvalidChoice) && r.interactive {
			_, _ = fmt.Fprintf(r.out, "  %v\n", err)
			continue
		}
		if err != nil {
			return err
		}
		if res.Correct != nil && r.interactive {
			verdict := "incorrect"
			if *res.Correct {
				verdict = "correct"
			}
			_, _ = fmt.Fprintf(r.out, "  %s (+%d XP)\n", verdict, res.XPAwarded)
		}
		snap = res.Session
	}
	return nil
}

// nextAnswer returns a scripted answer or prompts for one.
// ok is false when no answer is available.
func (r *quizRunner) nextAnswer(snap session.Snapshot) (string, bool, error) {
	if len(r.answers) > 0 {
		raw := r.answers[0]
		r.answers = r.answers[1:]
		return raw, true, nil
	}
	if !r.interactive {
		return "", false, nil
	}

	q := snap.Question
	_, _ = fmt.Fprintf(r.out, "\n[%d/%d] %s\n%s\n", q.Number, snap.Total, strings.ToUpper(string(q.Phase)), q.Prompt)
	for i, choice := range q.Choices {
		_, _ = fmt.Fprintf(r.out, "  %s) %s\n", core.ChoiceLabel(i), choice)
	}
	line, err := r.prompt("> ")
	if errors.Is(err, errNoInput) {
		return "", false, nil
	}
	return line, err == nil, err
}

func (r *quizRunner) runDrill(id string) error {
	scripted := len(r.reflex) > 0
	if !scripted && !r.interactive {
		return nil
	}
	if !scripted {
		_, _ = fmt.Fprintf(r.out, "\n%s\nRespond with NEUTRALIZE, DROP or FREEZE. Leave blank to skip.\n", core.ReflexHeader)
	}

	for {
		snap, err := r.reg.Get(id)
		if err != nil {
			return err
		}
		if snap.Threat == nil {
			return nil
		}

		var action schema.ReflexAction
		if scripted {
			if len(r.reflex) == 0 {
				return nil
			}
			action, r.reflex = r.reflex[0], r.reflex[1:]
		} else {
			_, _ = fmt.Fprintf(r.out, "\n%s\n", snap.Threat.Text)
			line, err := r.prompt("> ")
			if errors.Is(err, errNoInput) || line == "" {
				return nil
			}
			if err != nil {
				return err
			}
			action = schema.ReflexAction(strings.ToUpper(line))
		}

		res, err := r.reg.Reflex(id, action)
		switch {
		case errors.Is(err, session.ErrInvalidAction) && !scripted:
			_, _ = fmt.Fprintf(r.out, "  %v\n", err)
		case errors.Is(err, session.ErrReflexComplete):
			return nil
		case err != nil:
			return err
		case !scripted && res.Correct:
			_, _ = fmt.Fprintf(r.out, "  threat cleared (+%d XP)\n", res.XPAwarded)
		case !scripted:
			_, _ = fmt.Fprintln(r.out, "  wrong response, try again")
		}
	}
}

func (r *quizRunner) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(r.out, label)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			return "", errNoInput
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}

// quizCmd runs the quiz in the terminal.
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the aptitude quiz and print the agent dossier",
	Long: `Walk through the quiz one question at a time, then the reflex drill, and
print the resulting agent dossier.

Paths:
- explorer: instinct and technical questions
- specialist: deep scenario and TKS questions on top, answers count double,
  and the dossier carries a market range
- operator: twelve branching missions where answers count double
- calibration: ten instinct, ten random validation and ten technical questions

Choices are shown in a random order for every session. Prompts are shown
when stdin is a terminal. Pass --answers and --reflex to run without prompts,
for example in scripts or CI; add --shuffle=false so the letters match the
order printed by 'cybercompass questions'.

Examples:
  # Interactive explorer run
  cybercompass quiz

  # Scripted specialist run written as JSON
  cybercompass quiz --path specialist --shuffle=false --answers a,b,c,a,2,1,3 --output json

  # Operator missions
  cybercompass quiz --path operator

  # Record the dossier in a local SQLite archive
  cybercompass quiz --archive --archive-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		reg, err := newRegistry(zap.NewNop(), nil)
		if err != nil {
			contract.LogFatal("Failed to load question bank", err)
		}
		runner := &quizRunner{
			reg:         reg,
			in:          bufio.NewReader(cmd.InOrStdin()),
			out:         cmd.ErrOrStderr(),
			interactive: term.IsTerminal(int(os.Stdin.Fd())),
			answers:     cfg.Answers,
			reflex:      cfg.Reflex,
		}
		d, err := runner.run(cfg.Path)
		if err != nil {
			contract.LogFatal("Quiz failed", err)
		}
		if err := outwriter.NewOutWriter().WriteDossier(d, cfg); err != nil {
			contract.LogFatal("Failed to write dossier", err)
		}
	},
}

// questionsCmd lists the questions of a path.
var questionsCmd = &cobra.Command{
	Use:   "questions [explorer|specialist|operator|calibration]",
	Short: "List the questions of a quiz path in authored order",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		path := schema.ExplorerPath
		if len(args) == 1 {
			path = schema.QuizPath(strings.ToLower(args[0]))
		}
		if _, ok := schema.ValidQuizPaths[path]; !ok {
			contract.LogFatal("Invalid path", fmt.Errorf("%w: %q", session.ErrInvalidPath, path))
		}
		reg, err := newRegistry(zap.NewNop(), nil)
		if err != nil {
			contract.LogFatal("Failed to load question bank", err)
		}
		out := cmd.OutOrStdout()
		for _, q := range reg.Questions(path) {
			_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", q.Number, q.Phase, q.Prompt)
			for i, choice := range q.Choices {
				_, _ = fmt.Fprintf(out, "   %s) %s\n", core.ChoiceLabel(i), choice)
			}
		}
	},
}
