package dispatcher

import (
	"context"
	"log/slog"
	"sort"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MessageSender interface {
	SendCtx(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Delay after a failed send, so a broken transport is not hammered in a
// tight loop across the whole recipient set.
const FAIL_DELAY = 50 * time.Millisecond

// Dispatcher fans one message out to a set of chat ids. Failures are
// isolated per recipient and counted, never aborting the batch.
type Dispatcher struct {
	bot       MessageSender
	failDelay time.Duration
}

func NewDispatcher(bot MessageSender) *Dispatcher {
	return &Dispatcher{bot: bot, failDelay: FAIL_DELAY}
}

// Dispatch sends text to every distinct recipient. sent+failed always
// equals the number of distinct recipients.
func (disp *Dispatcher) Dispatch(ctx context.Context, recipients []int64, text string) (sent, failed int) {
	for _, chatId := range dedupe(recipients) {
		_, err := disp.bot.SendCtx(ctx, tgbotapi.NewMessage(chatId, text))
		if err != nil {
			slog.Warn("failed to send message", "chat_id", chatId, "err", err.Error())
			failed++
			disp.waitAfterFailure(ctx)
			continue
		}
		sent++
	}
	return sent, failed
}

func (disp *Dispatcher) waitAfterFailure(ctx context.Context) {
	timer := time.NewTimer(disp.failDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func dedupe(recipients []int64) []int64 {
	seen := make(map[int64]struct{}, len(recipients))
	distinct := make([]int64, 0, len(recipients))
	for _, chatId := range recipients {
		if _, ok := seen[chatId]; ok {
			continue
		}
		seen[chatId] = struct{}{}
		distinct = append(distinct, chatId)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })
	return distinct
}
