package update_handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/schedule"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
)

// AdminService backs the admin panel, reachable both through commands and
// through the panel's callback buttons.
type AdminService struct {
	bot         *tgutils.Bot
	cfg         *config.Config
	scheduleSrv *schedule.Service
	subscribers interfaces.SubscribersRepository
	cache       interfaces.SessionsCache
}

func NewAdminService(bot *tgutils.Bot, cfg *config.Config, scheduleSrv *schedule.Service,
	subscribers interfaces.SubscribersRepository, cache interfaces.SessionsCache) *AdminService {
	return &AdminService{
		bot:         bot,
		cfg:         cfg,
		scheduleSrv: scheduleSrv,
		subscribers: subscribers,
		cache:       cache,
	}
}

// RequireAdmin reports whether the user may use admin features, sending the
// authorization error itself when not.
func (srv *AdminService) RequireAdmin(ctx context.Context, chatId, userId int64) bool {
	if srv.cfg.IsAdmin(userId) {
		return true
	}
	_, err := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "Команда доступна только администраторам."))
	if err != nil {
		slog.Error("failed to send authorization error", "err", err.Error())
	}
	return false
}

func (srv *AdminService) SendPanel(ctx context.Context, chatId, userId int64) error {
	if !srv.RequireAdmin(ctx, chatId, userId) {
		return nil
	}
	msg := tgbotapi.NewMessage(chatId, "⚙️ Админ-панель")
	msg.ReplyMarkup = tgutils.AdminPanelKeyboard()
	_, err := srv.bot.SendCtx(ctx, msg)
	return err
}

// SendInfo reports sheet row counts and per-group subscriber counts. Store
// errors surface here as an explicit status message, nowhere else.
func (srv *AdminService) SendInfo(ctx context.Context, chatId, userId int64) error {
	if !srv.RequireAdmin(ctx, chatId, userId) {
		return nil
	}
	scheduleRows, examRows, err := srv.scheduleSrv.RowCounts(ctx)
	if err != nil {
		_, sendErr := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, fmt.Sprintf("Ошибка доступа к Google Sheets: %v", err)))
		return sendErr
	}
	counts, err := srv.subscribers.CountByGroup(ctx, srv.cfg.Groups)
	if err != nil {
		_, sendErr := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, fmt.Sprintf("Ошибка чтения подписчиков: %v", err)))
		return sendErr
	}
	parts := make([]string, 0, len(srv.cfg.Groups))
	for _, group := range srv.cfg.Groups {
		parts = append(parts, fmt.Sprintf("%s=%d", group, counts[group]))
	}
	text := fmt.Sprintf(
		"ℹ️ Информация:\n• TZ: %s\n• Schedule rows: %d\n• Exams rows: %d\n• Подписчики: %s\n• Google Sheet ID: %s",
		srv.cfg.Location.String(), scheduleRows, examRows, strings.Join(parts, ", "), srv.cfg.SpreadsheetId,
	)
	_, err = srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
	return err
}

func (srv *AdminService) Reload(ctx context.Context, chatId, userId int64) error {
	if !srv.RequireAdmin(ctx, chatId, userId) {
		return nil
	}
	if _, err := srv.scheduleSrv.ScheduleMap(ctx); err != nil {
		_, sendErr := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, fmt.Sprintf("❌ Ошибка при обновлении: %v", err)))
		return sendErr
	}
	if _, err := srv.scheduleSrv.ExamsMap(ctx); err != nil {
		_, sendErr := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, fmt.Sprintf("❌ Ошибка при обновлении: %v", err)))
		return sendErr
	}
	_, err := srv.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, "✅ Данные перечитаны из Google Sheets (готово)."))
	return err
}

// StartBroadcast enters the broadcast dialog, discarding any stale target
// left from an abandoned one.
func (srv *AdminService) StartBroadcast(ctx context.Context, chatId, userId int64) error {
	if !srv.RequireAdmin(ctx, chatId, userId) {
		return nil
	}
	session, err := srv.cache.Get(ctx, chatId)
	if err != nil {
		return fmt.Errorf("failed to get session during broadcast command: %w", err)
	}
	session.StartBroadcast()
	if err := srv.cache.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session during broadcast command: %w", err)
	}
	msg := tgbotapi.NewMessage(chatId, "Выберите, кому отправить объявление:")
	msg.ReplyMarkup = tgutils.BroadcastPickKeyboard(srv.cfg.Groups)
	_, err = srv.bot.SendCtx(ctx, msg)
	return err
}
