package stateMachine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
	datetime "github.com/ivkamenev/school_schedule_bot/src/utils/date_time"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

var _ State = (*idleState)(nil)

type idleState struct {
	cache     interfaces.SessionsCache
	bot       Bot
	cfg       *config.Config
	presenter *update_handlers.SchedulePresenter
	admin     *update_handlers.AdminService
}

func newIdleState(conf *statesConfig) *idleState {
	return &idleState{
		cache:     conf.cache,
		bot:       conf.bot,
		cfg:       conf.cfg,
		presenter: conf.presenter,
		admin:     conf.admin,
	}
}

func (*idleState) StateName() string {
	return constants.IDLE_STATE
}

func (state *idleState) Handle(ctx context.Context, message *tgbotapi.Message) error {
	if !message.IsCommand() {
		_, err := state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, "Воспользуйтесь командами бота или кнопками меню."))
		return err
	}

	switch message.Command() {
	case constants.START_COMMAND:
		slog.Info("user started", "user_id", message.From.ID, "user_name", message.From.UserName)
		return state.sendGroupPicker(ctx, message.Chat.ID, "Привет! Выберите свой класс:")
	case constants.GROUP_COMMAND:
		return state.sendGroupPicker(ctx, message.Chat.ID, "Выберите группу:")
	case constants.TODAY_COMMAND, constants.TOMORROW_COMMAND, constants.WEEK_COMMAND, constants.NEXTWEEK_COMMAND,
		constants.EXAMS_COMMAND, constants.EXAMS_WEEK_COMMAND, constants.EXAMS_NEXTWEEK_COMMAND:
		return state.handleScheduleCommand(ctx, message)
	case constants.DATE_COMMAND:
		return state.handleDateCommand(ctx, message)
	case constants.SUBSCRIBE_COMMAND:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Выберите группу для подписки на уведомления:")
		msg.ReplyMarkup = tgutils.SubscribeKeyboard(state.cfg.Groups)
		_, err := state.bot.SendCtx(ctx, msg)
		return err
	case constants.UNSUBSCRIBE_COMMAND:
		msg := tgbotapi.NewMessage(message.Chat.ID, "От какой группы отписаться?")
		msg.ReplyMarkup = tgutils.UnsubscribeKeyboard(state.cfg.Groups)
		_, err := state.bot.SendCtx(ctx, msg)
		return err
	case constants.ADMIN_COMMAND:
		return state.admin.SendPanel(ctx, message.Chat.ID, message.From.ID)
	case constants.ADMIN_INFO_COMMAND:
		return state.admin.SendInfo(ctx, message.Chat.ID, message.From.ID)
	case constants.ADMIN_RELOAD_COMMAND:
		return state.admin.Reload(ctx, message.Chat.ID, message.From.ID)
	case constants.BROADCAST_COMMAND:
		return state.admin.StartBroadcast(ctx, message.Chat.ID, message.From.ID)
	case constants.CANCEL_COMMAND:
		// Nothing to cancel outside the broadcast dialog.
		return nil
	}
	_, err := state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, "Неизвестная команда."))
	return err
}

func (state *idleState) handleScheduleCommand(ctx context.Context, message *tgbotapi.Message) error {
	group, err := state.ensureGroup(ctx, message.Chat.ID)
	if err != nil || group == "" {
		return err
	}
	text, err := state.presenter.RenderAction(ctx, message.Command(), group)
	if err != nil {
		return fmt.Errorf("failed to render %s command: %w", message.Command(), err)
	}
	return state.sendWithMenu(ctx, message.Chat.ID, message.From.ID, text)
}

func (state *idleState) handleDateCommand(ctx context.Context, message *tgbotapi.Message) error {
	group, err := state.ensureGroup(ctx, message.Chat.ID)
	if err != nil || group == "" {
		return err
	}
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		_, err := state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, "Использование: /date YYYY-MM-DD"))
		return err
	}
	day, err := datetime.ParseISODate(arg)
	if err != nil {
		_, err := state.bot.SendCtx(ctx, tgbotapi.NewMessage(message.Chat.ID, "Неверный формат даты (нужно YYYY-MM-DD)."))
		return err
	}
	text, err := state.presenter.DateText(ctx, group, day)
	if err != nil {
		return fmt.Errorf("failed to render date command: %w", err)
	}
	return state.sendWithMenu(ctx, message.Chat.ID, message.From.ID, text)
}

func (state *idleState) sendGroupPicker(ctx context.Context, chatId int64, text string) error {
	if err := state.cache.Clear(ctx, chatId); err != nil {
		return fmt.Errorf("failed to clear session during group selection: %w", err)
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ReplyMarkup = tgutils.GroupsKeyboard(state.cfg.Groups)
	_, err := state.bot.SendCtx(ctx, msg)
	return err
}

// ensureGroup returns the selected group or re-prompts for one. An empty
// result with nil error means the prompt was sent.
func (state *idleState) ensureGroup(ctx context.Context, chatId int64) (string, error) {
	session, err := state.cache.Get(ctx, chatId)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if session.Group() != "" {
		return session.Group(), nil
	}
	msg := tgbotapi.NewMessage(chatId, "Сначала выберите группу:")
	msg.ReplyMarkup = tgutils.GroupsKeyboard(state.cfg.Groups)
	_, err = state.bot.SendCtx(ctx, msg)
	return "", err
}

func (state *idleState) sendWithMenu(ctx context.Context, chatId, userId int64, text string) error {
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ReplyMarkup = tgutils.MainMenuKeyboard(state.cfg.IsAdmin(userId))
	_, err := state.bot.SendCtx(ctx, msg)
	return err
}
