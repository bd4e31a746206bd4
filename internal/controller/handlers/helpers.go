package handlers

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/tutor_bot/internal/controller/dialog"
	"github.com/Freeeeeet/tutor_bot/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const weekImageFilename = "week.png"

// optionsKeyboard создаёт inline клавиатуру из вариантов ответа
func optionsKeyboard(reply dialog.Reply) *models.InlineKeyboardMarkup {
	if len(reply.Options) == 0 {
		return nil
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(reply.Options))
	for _, option := range reply.Options {
		buttons = append(buttons, keyboard.Button(option.Label, EncodeSelection(option)))
	}
	return keyboard.NewBuilder().Grid(buttons, reply.Columns).Build()
}

// replyMarkup выбирает клавиатуру сообщения: варианты выбора или главное меню
func replyMarkup(reply dialog.Reply) models.ReplyMarkup {
	if kb := optionsKeyboard(reply); kb != nil {
		return kb
	}
	if reply.MainMenu {
		return keyboard.MainMenu()
	}
	return nil
}

// sendReply отправляет ответ контроллера новым сообщением (картинка, затем текст)
func (h *Handlers) sendReply(ctx context.Context, chatID int64, reply dialog.Reply) {
	if reply.IsEmpty() {
		return
	}

	if len(reply.Photo) > 0 {
		h.sendPhoto(ctx, chatID, reply.Photo)
	}

	if reply.Text == "" {
		return
	}

	params := &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        reply.Text,
		ReplyMarkup: replyMarkup(reply),
	}
	if reply.HTML {
		disabled := true
		params.ParseMode = models.ParseModeHTML
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: &disabled}
	}

	if _, err := h.sender.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// editReply заменяет текст и клавиатуру сообщения с выбором
func (h *Handlers) editReply(ctx context.Context, chatID int64, messageID int, reply dialog.Reply) {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      reply.Text,
	}
	if kb := optionsKeyboard(reply); kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := h.sender.EditMessageText(ctx, params); err != nil {
		h.logger.Error("Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

// sendPhoto отправляет PNG картинку
func (h *Handlers) sendPhoto(ctx context.Context, chatID int64, photo []byte) {
	_, err := h.sender.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: weekImageFilename,
			Data:     bytes.NewReader(photo),
		},
	})
	if err != nil {
		h.logger.Error("Failed to send photo",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет простой текст и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, chatID int64, text string) {
	_, err := h.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// answerCallback отвечает на callback query, alert показывается всплывающим окном
func (h *Handlers) answerCallback(ctx context.Context, callbackID, text string, alert bool) {
	_, err := h.sender.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}
