package stateMachine

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers"
	"github.com/ivkamenev/school_schedule_bot/src/telegram/update_handlers/constants"
)

type State interface {
	StateName() string
	Handle(ctx context.Context, message *tgbotapi.Message) error
}

type Sender interface {
	Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int)
}

// Bot is the slice of the bot wrapper the states need to reply.
type Bot interface {
	SendCtx(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StateMachine resolves the handler for a message from the user's broadcast
// stage. Callers serialize per user through the sessions cache lock, so one
// user's dialog can never be advanced by another user's message.
type StateMachine struct {
	cache interfaces.SessionsCache
}

type statesConfig struct {
	machine     *StateMachine
	cache       interfaces.SessionsCache
	bot         Bot
	cfg         *config.Config
	presenter   *update_handlers.SchedulePresenter
	admin       *update_handlers.AdminService
	subscribers interfaces.SubscribersRepository
	sender      Sender
}

func NewStatesConfig(cache interfaces.SessionsCache, bot Bot, cfg *config.Config,
	presenter *update_handlers.SchedulePresenter, admin *update_handlers.AdminService,
	subscribers interfaces.SubscribersRepository, sender Sender) *statesConfig {
	return &statesConfig{
		cache:       cache,
		bot:         bot,
		cfg:         cfg,
		presenter:   presenter,
		admin:       admin,
		subscribers: subscribers,
		sender:      sender,
	}
}

func NewStateMachine(conf *statesConfig) *StateMachine {
	machine := &StateMachine{cache: conf.cache}
	conf.machine = machine
	InitStates(conf)
	return machine
}

var states map[string]State

func InitStates(conf *statesConfig) {
	idle := newIdleState(conf)
	states = map[string]State{
		constants.IDLE_STATE:                 idle,
		constants.BROADCAST_WAIT_GROUP_STATE: newBroadcastAwaitGroupState(conf, idle),
		constants.BROADCAST_WAIT_TEXT_STATE:  newBroadcastAwaitTextState(conf, idle),
	}
}

func getStateByName(name string) State {
	return states[name]
}

func stateNameForStage(stage interfaces.BroadcastStage) string {
	switch stage {
	case interfaces.BroadcastAwaitingGroup:
		return constants.BROADCAST_WAIT_GROUP_STATE
	case interfaces.BroadcastAwaitingText:
		return constants.BROADCAST_WAIT_TEXT_STATE
	}
	return constants.IDLE_STATE
}

func (machine *StateMachine) Handle(ctx context.Context, message *tgbotapi.Message) error {
	session, err := machine.cache.Get(ctx, message.Chat.ID)
	if err != nil {
		return fmt.Errorf("couldn't get session in state machine: %w", err)
	}
	stateName := stateNameForStage(session.BroadcastStage())
	state := getStateByName(stateName)
	if state == nil {
		return fmt.Errorf("failed to get state for name %s", stateName)
	}
	return state.Handle(ctx, message)
}
