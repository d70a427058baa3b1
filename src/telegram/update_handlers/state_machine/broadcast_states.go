package stateMachine

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

var _ State = (*broadcastAwaitGroupState)(nil)

// broadcastAwaitGroupState holds the dialog between /broadcast and the
// target choice. The choice itself arrives as a callback, so text messages
// here only re-prompt; commands keep working through the idle state.
type broadcastAwaitGroupState struct {
	cache interfaces.SessionsCache
	bot   Bot
	cfg   *config.Config
	idle  *idleState
}

func newBroadcastAwaitGroupState(conf *statesConfig, idle *idleState) *broadcastAwaitGroupState {
	return &broadcastAwaitGroupState{cache: conf.cache, bot: conf.bot, cfg: conf.cfg, idle: idle}
}

func (*broadcastAwaitGroupState) StateName() string {
	return constants.BROADCAST_WAIT_GROUP_STATE
}

func (state *broadcastAwaitGroupState) Handle(ctx context.Context, message *tgbotapi.Message) error {
	if !state.cfg.IsAdmin(message.From.ID) {
		return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, "Только для администраторов.")
	}
	if message.IsCommand() {
		if message.Command() == constants.CANCEL_COMMAND {
			return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, "Операция отменена.")
		}
		return state.idle.Handle(ctx, message)
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "Выберите получателей кнопками ниже или отмените командой /cancel.")
	msg.ReplyMarkup = tgutils.BroadcastPickKeyboard(state.cfg.Groups)
	_, err := state.bot.SendCtx(ctx, msg)
	return err
}

var _ State = (*broadcastAwaitTextState)(nil)

type broadcastAwaitTextState struct {
	cache       interfaces.SessionsCache
	bot         Bot
	cfg         *config.Config
	subscribers interfaces.SubscribersRepository
	sender      Sender
	idle        *idleState
}

func newBroadcastAwaitTextState(conf *statesConfig, idle *idleState) *broadcastAwaitTextState {
	return &broadcastAwaitTextState{
		cache:       conf.cache,
		bot:         conf.bot,
		cfg:         conf.cfg,
		subscribers: conf.subscribers,
		sender:      conf.sender,
		idle:        idle,
	}
}

func (*broadcastAwaitTextState) StateName() string {
	return constants.BROADCAST_WAIT_TEXT_STATE
}

func (state *broadcastAwaitTextState) Handle(ctx context.Context, message *tgbotapi.Message) error {
	if !state.cfg.IsAdmin(message.From.ID) {
		return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, "Только для администраторов.")
	}
	if message.IsCommand() {
		if message.Command() == constants.CANCEL_COMMAND {
			return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, "Операция отменена.")
		}
		return state.idle.Handle(ctx, message)
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		// Re-prompt, the dialog stays in place.
		_, err := state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, "Пустое сообщение. Введите текст или /cancel."))
		return err
	}

	session, err := state.cache.Get(ctx, message.Chat.ID)
	if err != nil {
		return fmt.Errorf("failed to get session during broadcast text: %w", err)
	}
	target := session.BroadcastGroup()

	targets, err := state.resolveTargets(ctx, target)
	if err != nil {
		return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, fmt.Sprintf("❌ Ошибка чтения подписчиков: %v", err))
	}
	if len(targets) == 0 {
		return abortBroadcast(ctx, state.cache, state.bot, message.Chat.ID, "Подписчиков не найдено для выбранной группы.")
	}

	sent, failed := state.sender.Dispatch(ctx, targets, fmt.Sprintf("📣 Объявление для группы %s:\n\n%s", state.targetLabel(target), text))

	session.ResetBroadcast()
	if err := state.cache.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to reset session after broadcast: %w", err)
	}
	_, err = state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Готово. Разослано: %d, ошибок: %d.", sent, failed)))
	return err
}

func (state *broadcastAwaitTextState) resolveTargets(ctx context.Context, target string) ([]int64, error) {
	if target == tgutils.BROADCAST_ALL_GROUPS {
		return state.subscribers.ListByGroups(ctx, state.cfg.Groups)
	}
	return state.subscribers.ListByGroup(ctx, target)
}

func (state *broadcastAwaitTextState) targetLabel(target string) string {
	if target == tgutils.BROADCAST_ALL_GROUPS {
		return strings.Join(state.cfg.Groups, "+")
	}
	return target
}

func abortBroadcast(ctx context.Context, cache interfaces.SessionsCache, bot Bot, chatId int64, text string) error {
	session, err := cache.Get(ctx, chatId)
	if err != nil {
		return fmt.Errorf("failed to get session during broadcast abort: %w", err)
	}
	session.ResetBroadcast()
	if err := cache.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session during broadcast abort: %w", err)
	}
	_, err = bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
	return err
}
