package stateMachine

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
	"github.com/ivkamenev/school_schedule_bot/src/repository/memory"
)

const (
	testChatId      = int64(42)
	adminUserId     = int64(1)
	plainUserId     = int64(9)
	announcementMsg = "Завтра уроки по сокращённому расписанию"
)

type fakeBot struct {
	replies []string
}

func (bot *fakeBot) SendCtx(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	bot.replies = append(bot.replies, c.(tgbotapi.MessageConfig).Text)
	return tgbotapi.Message{}, nil
}

func (bot *fakeBot) lastReply() string {
	if len(bot.replies) == 0 {
		return ""
	}
	return bot.replies[len(bot.replies)-1]
}

type fakeSubscribersRepo struct {
	byGroup map[string][]int64
}

func (repo *fakeSubscribersRepo) Add(ctx context.Context, userId int64, group string) (bool, error) {
	return false, nil
}

func (repo *fakeSubscribersRepo) Remove(ctx context.Context, userId int64, group string) (int, error) {
	return 0, nil
}

func (repo *fakeSubscribersRepo) ListByGroup(ctx context.Context, group string) ([]int64, error) {
	return repo.byGroup[group], nil
}

func (repo *fakeSubscribersRepo) ListByGroups(ctx context.Context, groups []string) ([]int64, error) {
	seen := map[int64]struct{}{}
	targets := []int64{}
	for _, group := range groups {
		for _, userId := range repo.byGroup[group] {
			if _, ok := seen[userId]; ok {
				continue
			}
			seen[userId] = struct{}{}
			targets = append(targets, userId)
		}
	}
	return targets, nil
}

func (repo *fakeSubscribersRepo) CountByGroup(ctx context.Context, groups []string) (map[string]int, error) {
	counts := map[string]int{}
	for _, group := range groups {
		counts[group] = len(repo.byGroup[group])
	}
	return counts, nil
}

type fakeBroadcastSender struct {
	recipients [][]int64
	texts      []string
}

func (sender *fakeBroadcastSender) Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int) {
	sender.recipients = append(sender.recipients, recipients)
	sender.texts = append(sender.texts, text)
	return len(recipients), 0
}

type broadcastFixture struct {
	cache      *memory.SessionsCache
	bot        *fakeBot
	sender     *fakeBroadcastSender
	groupState *broadcastAwaitGroupState
	textState  *broadcastAwaitTextState
}

func newBroadcastFixture(t *testing.T) *broadcastFixture {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SPREADSHEET_ID", "sheet-id")
	t.Setenv("ADMINS", "1")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	cache := memory.NewSessionsCache()
	bot := &fakeBot{}
	subscribers := &fakeSubscribersRepo{byGroup: map[string][]int64{
		"10": {101, 102},
		"11": {102, 103},
	}}
	sender := &fakeBroadcastSender{}

	conf := NewStatesConfig(cache, bot, cfg, nil, nil, subscribers, sender)
	idle := newIdleState(conf)
	return &broadcastFixture{
		cache:      cache,
		bot:        bot,
		sender:     sender,
		groupState: newBroadcastAwaitGroupState(conf, idle),
		textState:  newBroadcastAwaitTextState(conf, idle),
	}
}

func (fixture *broadcastFixture) enterStage(t *testing.T, stage interfaces.BroadcastStage, target string) {
	ctx := context.Background()
	session, err := fixture.cache.Get(ctx, testChatId)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	session.StartBroadcast()
	if stage == interfaces.BroadcastAwaitingText {
		session.PickBroadcastGroup(target)
	}
	if err := fixture.cache.Save(ctx, session); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
}

func (fixture *broadcastFixture) stage(t *testing.T) interfaces.BroadcastStage {
	session, err := fixture.cache.Get(context.Background(), testChatId)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	return session.BroadcastStage()
}

func textMessage(userId int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatId},
		From: &tgbotapi.User{ID: userId},
	}
}

func commandMessage(userId int64, command string) *tgbotapi.Message {
	message := textMessage(userId, command)
	message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command)},
	}
	return message
}

func TestCancelInGroupStageClearsDialog(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingGroup, "")

	err := fixture.groupState.Handle(context.Background(), commandMessage(adminUserId, "/cancel"))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := fixture.stage(t); got != interfaces.BroadcastNone {
		t.Errorf("stage after /cancel = %d, want none", got)
	}
	if got := fixture.bot.lastReply(); got != "Операция отменена." {
		t.Errorf("reply = %q", got)
	}
	if len(fixture.sender.texts) != 0 {
		t.Errorf("cancel dispatched %d messages", len(fixture.sender.texts))
	}
}

func TestGroupStageRepromptsOnPlainText(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingGroup, "")

	err := fixture.groupState.Handle(context.Background(), textMessage(adminUserId, "десятый"))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := fixture.stage(t); got != interfaces.BroadcastAwaitingGroup {
		t.Errorf("stage after plain text = %d, want awaiting group", got)
	}
	if !strings.Contains(fixture.bot.lastReply(), "Выберите получателей") {
		t.Errorf("reply = %q", fixture.bot.lastReply())
	}
}

func TestGroupStageEjectsNonAdmin(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingGroup, "")

	err := fixture.groupState.Handle(context.Background(), textMessage(plainUserId, "текст"))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := fixture.stage(t); got != interfaces.BroadcastNone {
		t.Errorf("stage after non-admin message = %d, want none", got)
	}
	if got := fixture.bot.lastReply(); got != "Только для администраторов." {
		t.Errorf("reply = %q", got)
	}
}

func TestTextStageRepromptsOnWhitespace(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingText, "10")

	err := fixture.textState.Handle(context.Background(), textMessage(adminUserId, "   "))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := fixture.stage(t); got != interfaces.BroadcastAwaitingText {
		t.Errorf("stage after empty text = %d, want awaiting text", got)
	}
	if got := fixture.bot.lastReply(); got != "Пустое сообщение. Введите текст или /cancel." {
		t.Errorf("reply = %q", got)
	}
	if len(fixture.sender.texts) != 0 {
		t.Errorf("empty text dispatched %d messages", len(fixture.sender.texts))
	}
}

func TestTextStageDispatchesAndResets(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingText, "10")

	err := fixture.textState.Handle(context.Background(), textMessage(adminUserId, announcementMsg))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(fixture.sender.texts) != 1 {
		t.Fatalf("dispatched %d messages, want 1", len(fixture.sender.texts))
	}
	if got := fixture.sender.recipients[0]; len(got) != 2 || got[0] != 101 || got[1] != 102 {
		t.Errorf("recipients = %v, want [101 102]", got)
	}
	wantText := "📣 Объявление для группы 10:\n\n" + announcementMsg
	if fixture.sender.texts[0] != wantText {
		t.Errorf("dispatched text = %q, want %q", fixture.sender.texts[0], wantText)
	}
	if got := fixture.stage(t); got != interfaces.BroadcastNone {
		t.Errorf("stage after dispatch = %d, want none", got)
	}
	if got := fixture.bot.lastReply(); got != "Готово. Разослано: 2, ошибок: 0." {
		t.Errorf("report = %q", got)
	}
}

func TestTextStageBothTargetUnionsGroups(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingText, "both")

	err := fixture.textState.Handle(context.Background(), textMessage(adminUserId, announcementMsg))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(fixture.sender.recipients) != 1 {
		t.Fatalf("dispatched %d batches, want 1", len(fixture.sender.recipients))
	}
	// User 102 subscribes to both groups and must appear once.
	if got := fixture.sender.recipients[0]; len(got) != 3 {
		t.Errorf("recipients = %v, want three distinct users", got)
	}
	if !strings.Contains(fixture.sender.texts[0], "для группы 10+11:") {
		t.Errorf("dispatched text = %q", fixture.sender.texts[0])
	}
}

func TestCancelInTextStageClearsDialog(t *testing.T) {
	fixture := newBroadcastFixture(t)
	fixture.enterStage(t, interfaces.BroadcastAwaitingText, "10")

	err := fixture.textState.Handle(context.Background(), commandMessage(adminUserId, "/cancel"))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if got := fixture.stage(t); got != interfaces.BroadcastNone {
		t.Errorf("stage after /cancel = %d, want none", got)
	}
	if len(fixture.sender.texts) != 0 {
		t.Errorf("cancel dispatched %d messages", len(fixture.sender.texts))
	}
}
