package game

import (
	"github.com/kiryu-dev/board-games/internal/domain"
	"go.uber.org/zap"
)

func (u *useCase) publish(meta *domain.Meta, snapshot domain.Snapshot) {
	if !meta.Online() {
		return
	}
	participants := meta.Participants()
	u.broadcast(participants, domain.Message{
		Type: domain.StateUpdated,
		Payload: domain.StatePayload{
			GameUuid:          snapshot.GameUuid,
			Kind:              snapshot.Kind,
			Game:              snapshot.Game,
			LegalDestinations: snapshot.LegalDestinations,
		},
	})
	if snapshot.Winner == domain.NoResult {
		return
	}
	u.broadcast(participants, domain.Message{
		Type: domain.GameEnded,
		Payload: domain.GameEndedPayload{
			GameUuid: snapshot.GameUuid,
			Kind:     snapshot.Kind,
			Winner:   snapshot.Winner,
			Reason:   domain.Finished,
			Game:     snapshot.Game,
		},
	})
}

// broadcast is best effort: a client that went away is cleaned up by its
// own disconnect.
func (u *useCase) broadcast(clientUuids []string, msg domain.Message) {
	for _, clientUuid := range clientUuids {
		if err := u.notifier.Notify(clientUuid, msg); err != nil {
			u.logger.Warn("failed to notify client",
				zap.String("client uuid", clientUuid),
				zap.String("message type", string(msg.Type)),
				zap.Error(err),
			)
		}
	}
}
