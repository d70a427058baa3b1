package entities

import "time"

type Subscription struct {
	UserId  int64
	Group   string
	AddedAt time.Time
}

func NewSubscription(userId int64, group string, addedAt time.Time) *Subscription {
	return &Subscription{
		UserId:  userId,
		Group:   group,
		AddedAt: addedAt,
	}
}
