package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xaenox/tagbot/internal/tagger"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	tagger  *tagger.Service
	logger  *zap.Logger
	limiter *rate.Limiter
}

func New(token string, svc *tagger.Service, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:    api,
		tagger: svc,
		logger: logger,
		// Telegram caps bots around 30 messages per second overall.
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}, nil
}

func (b *Bot) Start() error {
	b.logger.Info("Bot started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	// Handle commands
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	// Get content from message
	content := message.Text
	if message.Caption != "" {
		content = message.Caption
	}
	if content == "" {
		b.logger.Debug("Ignoring message without text",
			zap.Int64("chat_id", message.Chat.ID))
		return
	}

	analysis := b.tagger.AnalyzeDetailed(content)

	b.logger.Info("Analyzed message",
		zap.String("analysis_id", analysis.ID),
		zap.Int64("chat_id", message.Chat.ID),
		zap.String("primary", analysis.Result.Primary),
		zap.String("secondary", analysis.Result.Secondary))

	b.sendAnalysisResponse(ctx, message.Chat.ID, message.MessageID, analysis)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "help":
		b.handleHelp(ctx, message)
	case "categories":
		b.handleCategories(ctx, message)
	case "keywords":
		b.handleKeywords(ctx, message)
	default:
		b.sendMessage(ctx, message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	welcome := `Welcome to TagBot! 🏷
Send me any text message and I'll answer with the two categories that fit it best.

Use /categories to see what I can recognize and /help for all commands.`

	b.sendMessage(ctx, message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(ctx context.Context, message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/categories - Show the configured categories
/keywords CATEGORY - Show the keywords of one category

Send any text message (or a photo with a caption) and I'll reply with its primary and secondary tags plus the matching scores.`

	b.sendMessage(ctx, message.Chat.ID, help)
}

func (b *Bot) handleCategories(ctx context.Context, message *tgbotapi.Message) {
	response := "*Configured categories:*\n"
	for _, name := range b.tagger.Categories() {
		keywords, _ := b.tagger.Keywords(name)
		line := escapeMarkdown("#" + strings.ReplaceAll(name, " ", "_"))
		if name == b.tagger.Fallback() {
			line += escapeMarkdown(" (fallback)")
		}
		line += escapeMarkdown(fmt.Sprintf(" - %d keywords", len(keywords)))
		response += line + "\n"
	}

	b.sendMarkdown(ctx, message.Chat.ID, response)
}

func (b *Bot) handleKeywords(ctx context.Context, message *tgbotapi.Message) {
	category := strings.TrimSpace(message.CommandArguments())
	if category == "" {
		b.sendMessage(ctx, message.Chat.ID, "Usage: /keywords CATEGORY")
		return
	}

	keywords, ok := b.tagger.Keywords(category)
	if !ok {
		b.sendMessage(ctx, message.Chat.ID,
			fmt.Sprintf("Unknown category %q. Use /categories to see the configured ones.", category))
		return
	}

	if len(keywords) == 0 {
		b.sendMessage(ctx, message.Chat.ID,
			fmt.Sprintf("%s has no keywords of its own; it is only assigned as fallback.", category))
		return
	}

	response := fmt.Sprintf("*Keywords for %s:*\n", escapeMarkdown(category))
	for _, phrase := range keywords {
		response += escapeMarkdown(phrase) + "\n"
	}

	b.sendMarkdown(ctx, message.Chat.ID, response)
}

func (b *Bot) sendAnalysisResponse(ctx context.Context, chatID int64, replyToID int, analysis tagger.Analysis) {
	primary := "#" + strings.ReplaceAll(analysis.Result.Primary, " ", "_")
	secondary := "#" + strings.ReplaceAll(analysis.Result.Secondary, " ", "_")

	text := fmt.Sprintf("🥇 *Primary:* %s\n", escapeMarkdown(primary))
	text += fmt.Sprintf("🥈 *Secondary:* %s\n", escapeMarkdown(secondary))

	var scored []string
	for _, row := range analysis.Ranking {
		if row.Score > 0 {
			scored = append(scored, fmt.Sprintf("%s: %.1f", row.Category, row.Score))
		}
	}
	if len(scored) > 0 {
		text += "\n" + escapeMarkdown("Scores: "+strings.Join(scored, ", "))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyToMessageID = replyToID

	b.send(ctx, msg)
}

// Add this helper function to escape special characters for MarkdownV2
func escapeMarkdown(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMarkdown(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"
	b.send(ctx, msg)
}

func (b *Bot) send(ctx context.Context, msg tgbotapi.MessageConfig) {
	if err := b.limiter.Wait(ctx); err != nil {
		b.logger.Error("Rate limiter interrupted", zap.Error(err))
		return
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID))
	}
}
