package usecase

import (
	"context"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
)

// BroadcastUseCase fans a message out to every subscribed websocket client.
type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if uc.broadcaster == nil || msg == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
