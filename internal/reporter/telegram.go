package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-savedjobs-extractor/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers the summary and the export file to a chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// NewTelegramWithAPI wraps an already configured bot client.
func NewTelegramWithAPI(api *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

func (t *Telegram) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// Present sends the summary, then the export file as a document.
func (t *Telegram) Present(res *scraper.Result, exportPath string) error {
	if err := t.SendSummary(res); err != nil {
		return err
	}
	if exportPath == "" {
		return nil
	}
	return t.SendFile(exportPath, Heading(res))
}

func (t *Telegram) SendSummary(res *scraper.Result) error {
	text := fmt.Sprintf("✅ *%s*\n", t.escapeMarkdown(Heading(res)))
	text += fmt.Sprintf("📄 Pages: %d\n", res.Pages)
	if res.Degraded() {
		text += fmt.Sprintf("⚠️ %s\n", t.escapeMarkdown("Stopped early: "+res.Reason.String()))
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "MarkdownV2"
	_, err := t.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}
	return nil
}

func (t *Telegram) SendFile(path, caption string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{
		Name:  filepath.Base(path),
		Bytes: data,
	})
	doc.Caption = caption
	if _, err := t.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send export: %w", err)
	}
	return nil
}

func (t *Telegram) SendError(err error) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("❌ Error during extraction: %v", err))
	_, sendErr := t.api.Send(msg)
	return sendErr
}
