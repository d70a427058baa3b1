package update_handlers

import (
	"context"
	"log/slog"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

var commands = []tgbotapi.BotCommand{
	{Command: constants.START_COMMAND, Description: "Запуск"},
	{Command: constants.GROUP_COMMAND, Description: "Сменить группу"},
	{Command: constants.TODAY_COMMAND, Description: "Расписание на сегодня"},
	{Command: constants.TOMORROW_COMMAND, Description: "Расписание на завтра"},
	{Command: constants.WEEK_COMMAND, Description: "Расписание на неделю"},
	{Command: constants.NEXTWEEK_COMMAND, Description: "Расписание на следующую неделю"},
	{Command: constants.DATE_COMMAND, Description: "Расписание на дату YYYY-MM-DD"},
	{Command: constants.EXAMS_COMMAND, Description: "Контрольные (ближайшие)"},
	{Command: constants.EXAMS_WEEK_COMMAND, Description: "Контрольные этой недели"},
	{Command: constants.EXAMS_NEXTWEEK_COMMAND, Description: "Контрольные следующей недели"},
	{Command: constants.SUBSCRIBE_COMMAND, Description: "Подписка на уведомления"},
	{Command: constants.UNSUBSCRIBE_COMMAND, Description: "Отписка от уведомлений"},
	{Command: constants.ADMIN_COMMAND, Description: "Админ-панель"},
	{Command: constants.ADMIN_INFO_COMMAND, Description: "Админ: информация"},
	{Command: constants.ADMIN_RELOAD_COMMAND, Description: "Админ: перезагрузка"},
	{Command: constants.BROADCAST_COMMAND, Description: "Админ: рассылка"},
}

func GetCommands() []tgbotapi.BotCommand {
	return commands
}

type StateMachine interface {
	Handle(ctx context.Context, message *tgbotapi.Message) error
}

// MessagesService routes every incoming message through the per-user state
// machine, holding that user's session lock for the whole turn.
type MessagesService struct {
	cache        interfaces.SessionsCache
	stateMachine StateMachine
}

func NewMessagesHandler(stateMachine StateMachine, cache interfaces.SessionsCache) *MessagesService {
	return &MessagesService{cache: cache, stateMachine: stateMachine}
}

func (srv *MessagesService) HandleMessages(update *tgbotapi.Update, bot *tgutils.Bot) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic", "err", r)
			debug.PrintStack()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DEFAULT_TIMEOUT)
	defer cancel()

	mu := srv.cache.AcquireLock(ctx, update.Message.Chat.ID)
	mu.Lock()
	defer mu.Unlock()

	err := srv.stateMachine.Handle(ctx, update.Message)
	if err != nil {
		slog.Error(err.Error())
	}
}
