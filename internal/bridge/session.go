// Package bridge frames SKILL statements for a running vendor session and
// tails the session log the application echoes results to. The channel is
// fire-and-forget: statements are appended to it and replies only ever show
// up, out of band, in the log.
package bridge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Aurelbuche/skill-mode/internal/logging"
)

// Session writes framed statements to the evaluator channel.
type Session struct {
	w      io.Writer
	logger *logging.Logger
}

// NewSession returns a session writing to w.
func NewSession(w io.Writer, logger *logging.Logger) *Session {
	return &Session{w: w, logger: logger}
}

// Open opens the channel at path for appending and returns a session over
// it. The caller closes the returned closer when done.
func Open(path string, logger *logging.Logger) (*Session, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return NewSession(f, logger), f, nil
}

// Notify appends an informational print statement; nothing is evaluated.
func (s *Session) Notify(msg string) error {
	return s.write(fmt.Sprintf("printf(%s)\n", quote(msg+"\n")))
}

// Eval appends a bare statement for evaluation.
func (s *Session) Eval(expr string) error {
	return s.write(strings.TrimRight(expr, "\n") + "\n")
}

// EvalWithEcho appends a print statement tagging the submission with a
// request id, then the statement itself. The id lets the caller find the
// reply when it surfaces in the session log.
func (s *Session) EvalWithEcho(expr string) (string, error) {
	id := uuid.NewString()[:8]
	expr = strings.TrimRight(expr, "\n")
	banner := fmt.Sprintf("printf(%s)\n", quote(fmt.Sprintf("skill-mode[%s]> %s\n", id, expr)))
	if err := s.write(banner + expr + "\n"); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Session) write(stmt string) error {
	if _, err := io.WriteString(s.w, stmt); err != nil {
		return fmt.Errorf("write channel: %w", err)
	}
	s.logger.Debug("Statement sent", map[string]interface{}{
		"bytes": len(stmt),
	})
	return nil
}

// quote renders a SKILL double-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
