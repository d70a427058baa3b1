package tgutils

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const BROADCAST_ALL_GROUPS = "both"

func GroupsKeyboard(groups []string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, group := range groups {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(group, "pick_group:"+group))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func MainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", "menu:today"),
			tgbotapi.NewInlineKeyboardButtonData("Завтра", "menu:tomorrow"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Неделя", "menu:week"),
			tgbotapi.NewInlineKeyboardButtonData("След. неделя", "menu:nextweek"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Контрольные", "menu:exams"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Контр. неделя", "menu:exams_week"),
			tgbotapi.NewInlineKeyboardButtonData("Контр. след. неделя", "menu:exams_nextweek"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("Сменить группу", "menu:change_group"),
		},
	}
	if isAdmin {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Админ-панель", "admin:panel"),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func AdminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Инфо", "admin:info"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reload", "admin:reload"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📣 Рассылка", "admin:broadcast"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "admin:back"),
		},
	)
}

func BroadcastPickKeyboard(groups []string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, group := range groups {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(group+" класс", "broadcast:grp:"+group))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Все группы", "broadcast:grp:"+BROADCAST_ALL_GROUPS),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "broadcast:cancel"),
		},
	)
}

func SubscribeKeyboard(groups []string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, group := range groups {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(group+" класс", "subs:add:"+group))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func UnsubscribeKeyboard(groups []string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, group := range groups {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(group+" класс", "subs:del:"+group))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("От всего", "subs:del:all"),
		},
	)
}
