package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/cron"
	"github.com/ivkamenev/school_schedule_bot/src/dispatcher"
	google_docs_auth "github.com/ivkamenev/school_schedule_bot/src/google_docs/auth"
	sheetsapi "github.com/ivkamenev/school_schedule_bot/src/google_docs/sheets_api"
	"github.com/ivkamenev/school_schedule_bot/src/logging"
	"github.com/ivkamenev/school_schedule_bot/src/repository/memory"
	sheetsrepo "github.com/ivkamenev/school_schedule_bot/src/repository/sheets"
	"github.com/ivkamenev/school_schedule_bot/src/repository/sqlite"
	"github.com/ivkamenev/school_schedule_bot/src/schedule"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/bot"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers"
	stateMachine "github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/state_machine"
	tgutils "github.com/ivkamenev/school_schedule_bot/src/utils/tg_utils"
	"github.com/ivkamenev/school_schedule_bot/src/watcher"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func main() {
	logging.InitLogging()

	if err := godotenv.Load(); err != nil {
		logging.Warn("no .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.FatalLog("failed to load config", "err", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := google_docs_auth.GetClient(ctx, cfg)
	if err != nil {
		logging.FatalLog("failed to authorize google sheets client", "err", err.Error())
	}
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		logging.FatalLog("failed to create sheets service", "err", err.Error())
	}
	store := sheetsapi.NewSheetsRowStore(sheetsService, cfg.SpreadsheetId)

	scheduleSrv := schedule.NewService(store, cfg.ScheduleSheet, cfg.ExamsSheet, cfg.Groups)
	subscribers := sheetsrepo.NewSubscribersRepository(store, cfg.SubsSheet, cfg.Location)

	botApi, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logging.FatalLog("failed to create bot api", "err", err.Error())
	}
	tgBot := tgutils.NewBot(botApi)
	disp := dispatcher.NewDispatcher(tgBot)

	cache := memory.NewSessionsCache()
	presenter := update_handlers.NewSchedulePresenter(scheduleSrv, cfg)
	admin := update_handlers.NewAdminService(tgBot, cfg, scheduleSrv, subscribers, cache)

	conf := stateMachine.NewStatesConfig(cache, tgBot, cfg, presenter, admin, subscribers, disp)
	machine := stateMachine.NewStateMachine(conf)
	msgSrv := update_handlers.NewMessagesHandler(machine, cache)
	callbackSrv := update_handlers.NewCallbacksService(cache, cfg, presenter, admin, subscribers)

	db, err := sql.Open("sqlite3", cfg.TasksDbPath)
	if err != nil {
		logging.FatalLog("failed to open tasks database", "err", err.Error())
	}
	defer db.Close()
	if err := sqlite.DatabaseInit(db); err != nil {
		logging.FatalLog("failed to init tasks database", "err", err.Error())
	}
	tasksRepo := sqlite.NewTasksRepository(db)
	digest := cron.NewDigestTask(scheduleSrv, subscribers, disp, cfg.Groups, cfg.Location)
	tasks := cron.NewTasksController(digest, tasksRepo, cfg.Location)

	watch := watcher.NewWatcher(scheduleSrv, subscribers, disp, cfg.Groups, cfg.WatchInterval, cfg.Location)

	go watch.Run(ctx)
	go tasks.InitTasks(ctx)

	controller := bot.NewBotController(tgBot, update_handlers.GetCommands(), msgSrv, callbackSrv)
	if err := controller.Start(ctx); err != nil {
		logging.FatalLog("bot stopped", "err", err.Error())
	}
	logging.Info("shutting down")
}
