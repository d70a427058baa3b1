package interfaces

import (
	"context"
	"sync"
)

type BroadcastStage int8

const (
	BroadcastNone BroadcastStage = iota
	BroadcastAwaitingGroup
	BroadcastAwaitingText
)

// Session is the in-memory conversational state of one user. Lost on
// restart, which is accepted behavior.
type Session struct {
	chatId         int64
	group          string
	broadcastStage BroadcastStage
	broadcastGroup string
}

func NewSession(chatId int64) *Session {
	return &Session{chatId: chatId}
}

func (session *Session) ChatId() int64 {
	return session.chatId
}

func (session *Session) Group() string {
	return session.group
}

func (session *Session) SetGroup(group string) {
	session.group = group
}

func (session *Session) BroadcastStage() BroadcastStage {
	return session.broadcastStage
}

func (session *Session) BroadcastGroup() string {
	return session.broadcastGroup
}

// StartBroadcast enters the broadcast dialog, discarding any stale target.
func (session *Session) StartBroadcast() {
	session.broadcastStage = BroadcastAwaitingGroup
	session.broadcastGroup = ""
}

func (session *Session) PickBroadcastGroup(group string) {
	session.broadcastStage = BroadcastAwaitingText
	session.broadcastGroup = group
}

func (session *Session) ResetBroadcast() {
	session.broadcastStage = BroadcastNone
	session.broadcastGroup = ""
}

type SessionsCache interface {
	// Get returns the user's session, creating an empty one on first access.
	Get(ctx context.Context, chatId int64) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context, chatId int64) error
	// AcquireLock returns the chat's mutex. The mutex stays resident for
	// the process lifetime, so one chat always serializes on one mutex.
	AcquireLock(ctx context.Context, chatId int64) *sync.Mutex
}
