package constants

import "time"

const (
	START_COMMAND          = "start"
	GROUP_COMMAND          = "group"
	TODAY_COMMAND          = "today"
	TOMORROW_COMMAND       = "tomorrow"
	WEEK_COMMAND           = "week"
	NEXTWEEK_COMMAND       = "nextweek"
	DATE_COMMAND           = "date"
	EXAMS_COMMAND          = "exams"
	EXAMS_WEEK_COMMAND     = "exams_week"
	EXAMS_NEXTWEEK_COMMAND = "exams_nextweek"
	SUBSCRIBE_COMMAND      = "subscribe"
	UNSUBSCRIBE_COMMAND    = "unsubscribe"
	ADMIN_COMMAND          = "admin"
	ADMIN_INFO_COMMAND     = "admin_info"
	ADMIN_RELOAD_COMMAND   = "admin_reload"
	BROADCAST_COMMAND      = "broadcast"
	CANCEL_COMMAND         = "cancel"
)

const (
	PICK_GROUP_CALLBACK = "pick_group"
	SUBS_CALLBACK       = "subs"
	MENU_CALLBACK       = "menu"
	ADMIN_CALLBACK      = "admin"
	BROADCAST_CALLBACK  = "broadcast"
)

const (
	IDLE_STATE                 = ""
	BROADCAST_WAIT_GROUP_STATE = "broadcast_group"
	BROADCAST_WAIT_TEXT_STATE  = "broadcast_text"
)

const DEFAULT_TIMEOUT = 30 * time.Second

// Horizon of the plain /exams view.
const EXAMS_HORIZON_DAYS = 90
