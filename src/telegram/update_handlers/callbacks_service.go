package update_handlers

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

// CallbacksService handles every inline keyboard press: group selection,
// subscription management, the main menu and the admin panel, including
// the broadcast target choice.
type CallbacksService struct {
	cache       interfaces.SessionsCache
	cfg         *config.Config
	presenter   *SchedulePresenter
	admin       *AdminService
	subscribers interfaces.SubscribersRepository
}

func NewCallbacksService(cache interfaces.SessionsCache, cfg *config.Config, presenter *SchedulePresenter,
	admin *AdminService, subscribers interfaces.SubscribersRepository) *CallbacksService {
	return &CallbacksService{
		cache:       cache,
		cfg:         cfg,
		presenter:   presenter,
		admin:       admin,
		subscribers: subscribers,
	}
}

func (srv *CallbacksService) HandleCallbacks(update *tgbotapi.Update, bot *tgutils.Bot) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic", "err", r)
			debug.PrintStack()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DEFAULT_TIMEOUT)
	defer cancel()

	callback := update.CallbackQuery
	if callback.Message == nil {
		return
	}
	if err := bot.Ack(callback.ID); err != nil {
		slog.Warn("failed to answer callback query", "err", err.Error())
	}

	chatId := callback.Message.Chat.ID
	mu := srv.cache.AcquireLock(ctx, chatId)
	mu.Lock()
	defer mu.Unlock()

	err := srv.route(ctx, bot, callback)
	if err != nil {
		slog.Error(err.Error())
	}
}

func (srv *CallbacksService) route(ctx context.Context, bot *tgutils.Bot, callback *tgbotapi.CallbackQuery) error {
	chatId := callback.Message.Chat.ID
	userId := callback.From.ID
	parts := strings.Split(callback.Data, ":")

	switch parts[0] {
	case constants.PICK_GROUP_CALLBACK:
		if len(parts) != 2 {
			return fmt.Errorf("malformed group callback %s", callback.Data)
		}
		return srv.handlePickGroup(ctx, bot, chatId, userId, parts[1])
	case constants.SUBS_CALLBACK:
		if len(parts) != 3 {
			return fmt.Errorf("malformed subscription callback %s", callback.Data)
		}
		return srv.handleSubscription(ctx, bot, chatId, userId, parts[1], parts[2])
	case constants.MENU_CALLBACK:
		if len(parts) != 2 {
			return fmt.Errorf("malformed menu callback %s", callback.Data)
		}
		return srv.handleMenu(ctx, bot, chatId, userId, parts[1])
	case constants.ADMIN_CALLBACK:
		if len(parts) != 2 {
			return fmt.Errorf("malformed admin callback %s", callback.Data)
		}
		return srv.handleAdmin(ctx, bot, chatId, userId, parts[1])
	case constants.BROADCAST_CALLBACK:
		return srv.handleBroadcast(ctx, bot, chatId, userId, parts[1:])
	}
	return fmt.Errorf("unknown callback %s", callback.Data)
}

func (srv *CallbacksService) handlePickGroup(ctx context.Context, bot *tgutils.Bot, chatId, userId int64, group string) error {
	if !srv.cfg.IsTrackedGroup(group) {
		_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Неизвестная группа."))
		return err
	}
	session, err := srv.cache.Get(ctx, chatId)
	if err != nil {
		return fmt.Errorf("failed to get session during group selection: %w", err)
	}
	session.SetGroup(group)
	if err := srv.cache.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session during group selection: %w", err)
	}
	msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("Группа установлена: %s", group))
	msg.ReplyMarkup = tgutils.MainMenuKeyboard(srv.cfg.IsAdmin(userId))
	_, err = bot.SendCtx(ctx, msg)
	return err
}

func (srv *CallbacksService) handleSubscription(ctx context.Context, bot *tgutils.Bot, chatId, userId int64, action, group string) error {
	switch action {
	case "add":
		if !srv.cfg.IsTrackedGroup(group) {
			_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Некорректная группа."))
			return err
		}
		added, err := srv.subscribers.Add(ctx, userId, group)
		if err != nil {
			return fmt.Errorf("failed to add subscription: %w", err)
		}
		text := fmt.Sprintf("Вы уже подписаны на %s класс.", group)
		if added {
			text = fmt.Sprintf("Готово! Подписка на уведомления группы %s оформлена.", group)
		}
		_, err = bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
		return err
	case "del":
		if group != interfaces.RemoveAll && !srv.cfg.IsTrackedGroup(group) {
			_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Некорректная группа."))
			return err
		}
		removed, err := srv.subscribers.Remove(ctx, userId, group)
		if err != nil {
			return fmt.Errorf("failed to remove subscription: %w", err)
		}
		text := "Нечего удалять — вы не подписаны."
		if removed > 0 {
			if group == interfaces.RemoveAll {
				text = "Все подписки удалены."
			} else {
				text = "Подписка удалена."
			}
		}
		_, err = bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
		return err
	}
	return fmt.Errorf("unknown subscription action %s", action)
}

func (srv *CallbacksService) handleMenu(ctx context.Context, bot *tgutils.Bot, chatId, userId int64, action string) error {
	if action == "change_group" {
		if err := srv.cache.Clear(ctx, chatId); err != nil {
			return fmt.Errorf("failed to clear session during group change: %w", err)
		}
		msg := tgbotapi.NewMessage(chatId, "Выберите группу:")
		msg.ReplyMarkup = tgutils.GroupsKeyboard(srv.cfg.Groups)
		_, err := bot.SendCtx(ctx, msg)
		return err
	}

	session, err := srv.cache.Get(ctx, chatId)
	if err != nil {
		return fmt.Errorf("failed to get session during menu action: %w", err)
	}
	if session.Group() == "" {
		msg := tgbotapi.NewMessage(chatId, "Сначала выберите группу:")
		msg.ReplyMarkup = tgutils.GroupsKeyboard(srv.cfg.Groups)
		_, err := bot.SendCtx(ctx, msg)
		return err
	}

	text, err := srv.presenter.RenderAction(ctx, action, session.Group())
	if err != nil {
		return fmt.Errorf("failed to render menu action %s: %w", action, err)
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ReplyMarkup = tgutils.MainMenuKeyboard(srv.cfg.IsAdmin(userId))
	_, err = bot.SendCtx(ctx, msg)
	return err
}

func (srv *CallbacksService) handleAdmin(ctx context.Context, bot *tgutils.Bot, chatId, userId int64, action string) error {
	switch action {
	case "panel":
		return srv.admin.SendPanel(ctx, chatId, userId)
	case "info":
		return srv.admin.SendInfo(ctx, chatId, userId)
	case "reload":
		return srv.admin.Reload(ctx, chatId, userId)
	case "broadcast":
		return srv.admin.StartBroadcast(ctx, chatId, userId)
	case "back":
		msg := tgbotapi.NewMessage(chatId, "Главное меню")
		msg.ReplyMarkup = tgutils.MainMenuKeyboard(srv.cfg.IsAdmin(userId))
		_, err := bot.SendCtx(ctx, msg)
		return err
	}
	return fmt.Errorf("unknown admin action %s", action)
}

func (srv *CallbacksService) handleBroadcast(ctx context.Context, bot *tgutils.Bot, chatId, userId int64, parts []string) error {
	if !srv.admin.RequireAdmin(ctx, chatId, userId) {
		return nil
	}
	session, err := srv.cache.Get(ctx, chatId)
	if err != nil {
		return fmt.Errorf("failed to get session during broadcast callback: %w", err)
	}

	if len(parts) == 1 && parts[0] == "cancel" {
		if session.BroadcastStage() == interfaces.BroadcastNone {
			return nil
		}
		session.ResetBroadcast()
		if err := srv.cache.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session during broadcast cancel: %w", err)
		}
		_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Рассылка отменена."))
		return err
	}

	if len(parts) == 2 && parts[0] == "grp" {
		if session.BroadcastStage() != interfaces.BroadcastAwaitingGroup {
			// A press on a stale keyboard outside the dialog.
			return nil
		}
		group := parts[1]
		if group != tgutils.BROADCAST_ALL_GROUPS && !srv.cfg.IsTrackedGroup(group) {
			_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Некорректный выбор группы."))
			return err
		}
		session.PickBroadcastGroup(group)
		if err := srv.cache.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session during broadcast target choice: %w", err)
		}
		label := group
		if group == tgutils.BROADCAST_ALL_GROUPS {
			label = strings.Join(srv.cfg.Groups, "+")
		}
		text := fmt.Sprintf("Введите текст объявления для: %s\n\nОтправьте одним сообщением. Для отмены — /cancel", label)
		_, err := bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
		return err
	}
	return fmt.Errorf("malformed broadcast callback %s", strings.Join(parts, ":"))
}
