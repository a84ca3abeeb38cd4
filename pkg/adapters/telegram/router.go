// Package telegram exposes the factorizer as a Telegram bot.
// Any text message is factored; /start and /help print usage.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/aretw0/trinomial/pkg/runner"
)

// MaxMessageLength keeps replies under Telegram's 4096 character cap.
const MaxMessageLength = 3900

const usage = "Send a trinomial such as x^2+5x+6 or v^16+58v^8+697 and I will factor it step by step.\n" +
	"Commands: /start, /help"

// Sender is the part of *tgbotapi.BotAPI the router writes through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot is a Sender that can also long-poll for updates.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Router turns Telegram updates into factorizations.
type Router struct {
	Engine ports.Factorer
	Sender Sender
	logger *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// NewRouter creates a router that replies through sender.
func NewRouter(engine ports.Factorer, sender Sender, opts ...Option) *Router {
	r := &Router{
		Engine: engine,
		Sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewBot connects to the Bot API with the given token.
func NewBot(token string, debug bool) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.New("telegram token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	bot.Debug = debug
	return bot, nil
}

// Run long-polls bot until ctx is cancelled.
func (r *Router) Run(ctx context.Context, bot Bot, timeoutSeconds int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSeconds

	updates := bot.GetUpdatesChan(u)
	defer bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			r.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate answers one update. Updates without a text message are ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(cid, upd.Message.Command())
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	clean, err := runner.SanitizeInput(text)
	if err != nil {
		r.send(cid, fmt.Sprintf("Input rejected: %v", err))
		return
	}

	exp, err := r.Engine.FactorWith(ctx, clean, domain.NotationPlain)
	if exp == nil && err != nil {
		r.logger.Error("factorization failed", "chat_id", cid, "err", err)
		r.send(cid, fmt.Sprintf("Error: %v", err))
		return
	}
	r.send(cid, Format(exp))
}

func (r *Router) handleCommand(cid int64, cmd string) {
	switch cmd {
	case "start", "help":
		r.send(cid, usage)
	default:
		r.send(cid, "Unknown command. "+usage)
	}
}

func (r *Router) send(chatID int64, text string) {
	if len(text) > MaxMessageLength {
		text = text[:MaxMessageLength] + "…"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Sender.Send(msg); err != nil {
		r.logger.Warn("telegram send failed", "chat_id", chatID, "err", err)
	}
}

// Format renders an explanation as chat text.
func Format(exp *domain.Explanation) string {
	var b strings.Builder
	b.WriteString(exp.Normalized)
	b.WriteString("\n")
	for i, step := range exp.Steps {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, step.Label)
		for _, f := range step.Formulas {
			fmt.Fprintf(&b, "   %s\n", f)
		}
		if step.Note != "" {
			fmt.Fprintf(&b, "   (%s)\n", step.Note)
		}
	}
	if exp.Solved {
		fmt.Fprintf(&b, "\nResult: %s", exp.Factored)
	}
	return strings.TrimRight(b.String(), "\n")
}
