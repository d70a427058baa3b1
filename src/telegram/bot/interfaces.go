package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

type MessagesService interface {
	HandleMessages(update *tgbotapi.Update, bot *tgutils.Bot)
}

type CallbacksService interface {
	HandleCallbacks(update *tgbotapi.Update, bot *tgutils.Bot)
}
