package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/logging"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

type BotController struct {
	bot         *tgutils.Bot
	commands    []tgbotapi.BotCommand
	msgSrv      MessagesService
	callbackSrv CallbacksService
}

func NewBotController(bot *tgutils.Bot, commands []tgbotapi.BotCommand, msgSrv MessagesService, callbackSrv CallbacksService) *BotController {
	return &BotController{
		bot:         bot,
		commands:    commands,
		msgSrv:      msgSrv,
		callbackSrv: callbackSrv,
	}
}

// Start runs the long polling loop until ctx is cancelled. Each update is
// handled on its own goroutine; per-user ordering is enforced further down
// by the session locks.
func (controller *BotController) Start(ctx context.Context) error {
	logging.Info(fmt.Sprintf("authorized on account %s", controller.bot.Self.UserName))

	if _, err := controller.bot.Request(tgbotapi.NewSetMyCommands(controller.commands...)); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := controller.bot.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		controller.bot.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message != nil {
			go controller.msgSrv.HandleMessages(&update, controller.bot)
		} else if update.CallbackQuery != nil {
			go controller.callbackSrv.HandleCallbacks(&update, controller.bot)
		}
	}
	return nil
}
