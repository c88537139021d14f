// Package mail delivers article notifications through a local sendmail binary.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tesso57/things-rss/internal/application/usecase"
	"github.com/tesso57/things-rss/internal/domain/reading"
	"github.com/tesso57/things-rss/internal/domain/subscription"
	gomail "github.com/wneessen/go-mail"
)

const defaultCommand = "/usr/sbin/sendmail"

// Config controls sendmail subprocess invocation.
type Config struct {
	Command string
}

// Runner executes the mail submission command with the message on stdin and
// returns its stdout/stderr text.
type Runner func(ctx context.Context, command string, args []string, stdin []byte) (string, string, error)

// Sendmail implements usecase.Notifier by piping messages to sendmail.
type Sendmail struct {
	config Config
	run    Runner
}

// NewSendmail creates a sendmail notifier.
func NewSendmail(cfg Config) Sendmail {
	return Sendmail{
		config: normalizeConfig(cfg),
		run:    defaultRunner,
	}
}

// NewSendmailWithRunner creates a notifier with a custom runner for tests.
func NewSendmailWithRunner(cfg Config, runner Runner) Sendmail {
	if runner == nil {
		runner = defaultRunner
	}
	return Sendmail{
		config: normalizeConfig(cfg),
		run:    runner,
	}
}

// Send submits one message whose subject is "<site>: <article>" and whose body
// is the article URL. Failures are *usecase.NotifyError.
func (s Sendmail) Send(ctx context.Context, site subscription.Site, article reading.Article, recipient, sender string) error {
	subject := usecase.Subject(site, article)

	raw, err := Compose(subject, article.URL, recipient, sender)
	if err != nil {
		return &usecase.NotifyError{Subject: subject, Err: err}
	}

	stdout, stderr, err := s.run(ctx, s.config.Command, s.args(recipient, sender), raw)
	if err != nil {
		reason := strings.TrimSpace(stderr)
		if reason == "" {
			reason = strings.TrimSpace(stdout)
		}
		if reason == "" {
			return &usecase.NotifyError{Subject: subject, Err: fmt.Errorf("sendmail failed: %w", err)}
		}
		return &usecase.NotifyError{Subject: subject, Err: fmt.Errorf("sendmail failed: %w: %s", err, reason)}
	}
	return nil
}

// Compose renders a plain text RFC 5322 message.
func Compose(subject, body, recipient, sender string) ([]byte, error) {
	if strings.TrimSpace(recipient) == "" {
		return nil, errors.New("recipient is empty")
	}
	if strings.TrimSpace(sender) == "" {
		return nil, errors.New("sender is empty")
	}

	msg := gomail.NewMsg()
	if err := msg.From(sender); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextPlain, body)

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render message: %w", err)
	}
	return buf.Bytes(), nil
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	if strings.TrimSpace(normalized.Command) == "" {
		normalized.Command = defaultCommand
	}
	return normalized
}

// args mirrors the classic sendmail transport: ignore lone dots, set the
// envelope sender and pass the recipient explicitly.
func (s Sendmail) args(recipient, sender string) []string {
	return []string{"-i", "-f", sender, "--", recipient}
}

func defaultRunner(ctx context.Context, command string, args []string, stdin []byte) (string, string, error) {
	cmd := exec.CommandContext(ctx, command, args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
