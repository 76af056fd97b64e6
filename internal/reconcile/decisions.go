package reconcile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

// ErrInputExhausted signals that the operator input ended before a verdict was
// entered. No repository is graded without an answer.
var ErrInputExhausted = errors.ValidationError("input ended before a verdict was entered").Build()

// Outcome is an operator verdict for one repository.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
	OutcomeSkip Outcome = "skip"
)

// ParseOutcome maps operator input to an Outcome. Only the exact tokens
// "fail" and "skip" are recognized; anything else is a pass.
func ParseOutcome(s string) Outcome {
	switch strings.TrimSpace(s) {
	case string(OutcomeFail):
		return OutcomeFail
	case string(OutcomeSkip):
		return OutcomeSkip
	default:
		return OutcomePass
	}
}

// DecisionProvider supplies per-repository decisions in interactive mode.
type DecisionProvider interface {
	Outcome(ctx context.Context, repo string) (Outcome, error)
	// Comment returns the comment for repo; an empty comment skips the repository.
	Comment(ctx context.Context, repo string) (string, error)
}

// BlockTerminator ends a comment block typed at the prompt.
const BlockTerminator = "."

// PromptProvider asks an operator on out and reads answers from in.
type PromptProvider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptProvider returns a provider reading from in and prompting on out.
func NewPromptProvider(in io.Reader, out io.Writer) *PromptProvider {
	return &PromptProvider{in: bufio.NewReader(in), out: out}
}

func (p *PromptProvider) Outcome(ctx context.Context, repo string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(p.out, "Did %s 'pass' or 'fail'? [Default: pass]: ", repo)
	line, err := p.in.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		return "", ErrInputExhausted.WithContext(logfields.KeyRepo, repo).Wrap(io.ErrUnexpectedEOF)
	case err != nil && err != io.EOF:
		return "", fmt.Errorf("read outcome for %s: %w", repo, err)
	}
	return ParseOutcome(line), nil
}

// Comment reads lines up to a line holding only BlockTerminator or EOF.
func (p *PromptProvider) Comment(ctx context.Context, repo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(p.out, "\nGrading %s - enter grading comment, end with a line containing only %q:\n", repo, BlockTerminator)
	var b strings.Builder
	for {
		line, err := p.in.ReadString('\n')
		if strings.TrimRight(line, "\r\n") == BlockTerminator {
			break
		}
		b.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read comment for %s: %w", repo, err)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", nil
	}
	return b.String(), nil
}

// StaticProvider answers from fixed data, for batch runs and tests.
type StaticProvider struct {
	// Outcomes maps repository name to verdict; missing repositories use Default.
	Outcomes map[string]Outcome
	Default  Outcome
	// Comments maps repository name to comment; missing repositories use Shared.
	Comments map[string]string
	Shared   string
}

func (s StaticProvider) Outcome(ctx context.Context, repo string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if o, ok := s.Outcomes[repo]; ok {
		return o, nil
	}
	if s.Default == "" {
		return OutcomePass, nil
	}
	return s.Default, nil
}

func (s StaticProvider) Comment(ctx context.Context, repo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c, ok := s.Comments[repo]; ok {
		return c, nil
	}
	return s.Shared, nil
}
