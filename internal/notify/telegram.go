package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/whatsapp-notebooklm/internal/models"
)

// Sender delivers a chattable to Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts run reports to a single chat
type Telegram struct {
	api    Sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a notifier backed by the Bot API
func NewTelegram(token string, chatID int64, logger zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	return NewTelegramWithSender(api, chatID, logger), nil
}

// NewTelegramWithSender creates a notifier around an existing sender
func NewTelegramWithSender(api Sender, chatID int64, logger zerolog.Logger) *Telegram {
	return &Telegram{
		api:    api,
		chatID: chatID,
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// NotifyRun sends the formatted report of a run
func (t *Telegram) NotifyRun(ctx context.Context, run *models.ConversionRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatReport(run))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error().
			Err(err).
			Int64("chat_id", t.chatID).
			Msg("Failed to send run report")
		return fmt.Errorf("failed to send message: %w", err)
	}

	t.logger.Debug().Int64("chat_id", t.chatID).Msg("Run report sent")
	return nil
}

// FormatReport renders a run report as a Telegram Markdown message
func FormatReport(run *models.ConversionRun) string {
	var b strings.Builder

	if !run.Succeeded() {
		b.WriteString("❌ *Conversion failed*\n\n")
		fmt.Fprintf(&b, "*Folder:* %s\n", escapeMarkdownV1(run.ChatFolder))
		fmt.Fprintf(&b, "*Error:* %s\n", escapeMarkdownV1(run.ErrorMessage))
		return b.String()
	}

	b.WriteString("✅ *Conversion complete*\n\n")
	fmt.Fprintf(&b, "*Chat file:* %s\n", escapeMarkdownV1(run.ChatFile))
	fmt.Fprintf(&b, "*Lines:* %d\n", run.LineCount)
	fmt.Fprintf(&b, "*Documents:* %d\n", len(run.Files))

	if len(run.Files) > 0 {
		files := append([]string(nil), run.Files...)
		sort.Strings(files)
		b.WriteString("\n")
		for _, f := range files {
			fmt.Fprintf(&b, "• %s\n", escapeMarkdownV1(f))
		}
	}

	if run.Media.Total() > 0 {
		kinds := make([]string, 0, len(run.Media))
		for kind, n := range run.Media {
			kinds = append(kinds, fmt.Sprintf("%s %d", kind, n))
		}
		sort.Strings(kinds)
		fmt.Fprintf(&b, "\n*Media:* %s\n", strings.Join(kinds, ", "))
	}

	fmt.Fprintf(&b, "\n_Took %d ms_", run.DurationMs)
	return b.String()
}

var markdownV1Escaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)

// escapeMarkdownV1 escapes the characters Telegram Markdown V1 treats as entities
func escapeMarkdownV1(text string) string {
	return markdownV1Escaper.Replace(text)
}
