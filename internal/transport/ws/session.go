package ws

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		clientUuid = uuid.NewString()
	}
	if s.clients.connected(clientUuid) {
		s.writeJson(w, http.StatusConflict, domain.ErrorPayload{Reason: errDuplicateClient.Error()})
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}
	c := newClient(conn, clientUuid, s.cfg.WriteTimeout)
	defer c.Close()
	if err := s.clients.add(c); err != nil {
		_ = c.WriteMessage(domain.Message{Type: domain.Error, Payload: domain.ErrorPayload{Reason: err.Error()}})
		return
	}
	done := make(chan struct{})
	defer close(done)
	c.keepAlive(s.cfg.PongWait, done)
	logger := s.logger.With(zap.String("client uuid", clientUuid))
	logger.Info("client connected")
	ctx := context.WithoutCancel(r.Context())
	defer func() {
		if s.clients.remove(c) {
			logger.Info("client disconnected")
			s.hub.Disconnect(ctx, clientUuid)
		}
	}()
	if err := c.WriteMessage(domain.Message{Type: domain.Hello, Payload: domain.HelloPayload{ClientUuid: clientUuid}}); err != nil {
		logger.Warn("failed to greet client", zap.Error(err))
		return
	}
	for {
		msg, err := c.ReadMessage()
		switch {
		case errors.Is(err, domain.ErrConnectionClosed):
			return
		case err != nil:
			s.replyError(c, err)
			continue
		}
		s.handleMessage(ctx, c, msg)
	}
}

func (s *server) handleMessage(ctx context.Context, c *client, msg domain.Message) {
	switch msg.Type {
	case domain.Join:
		payload, err := decodePayload[domain.QueuePayload](s, msg.Payload)
		if err != nil {
			s.replyError(c, err)
			return
		}
		if _, err := s.hub.Join(ctx, payload.Kind, c.Uuid()); err != nil {
			s.replyError(c, err)
		}
	case domain.Leave:
		payload, err := decodePayload[domain.QueuePayload](s, msg.Payload)
		if err != nil {
			s.replyError(c, err)
			return
		}
		s.hub.Leave(payload.Kind, c.Uuid())
	case domain.Action:
		payload, err := decodePayload[domain.ActionPayload](s, msg.Payload)
		if err == nil && (payload.Kind == "" || payload.GameUuid == "") {
			err = errors.WithMessage(domain.ErrBadRequest, "kind and gameId are required")
		}
		if err != nil {
			s.reply(c, domain.MoveRejected, domain.MoveRejectedPayload{GameUuid: payload.GameUuid, Reason: err.Error()})
			return
		}
		/* accepted actions reach the participants through the notifier */
		_, err = s.games.Apply(ctx, actionRequest(payload.Kind, payload.GameUuid, payload, c.Uuid()))
		switch {
		case domain.IsUserError(err):
			s.reply(c, domain.MoveRejected, domain.MoveRejectedPayload{GameUuid: payload.GameUuid, Reason: err.Error()})
		case err != nil:
			s.replyError(c, err)
		}
	default:
		s.reply(c, domain.Error, domain.ErrorPayload{Reason: "unknown message type '" + string(msg.Type) + "'"})
	}
}

func decodePayload[T any](s *server, payload any) (T, error) {
	v, err := utils.Recode[T](payload)
	if err != nil {
		return v, errors.WithMessagef(domain.ErrBadRequest, "malformed payload: %v", err)
	}
	if err := s.validateStruct(v); err != nil {
		return v, err
	}
	return v, nil
}

func (s *server) replyError(c *client, err error) {
	if !domain.IsUserError(err) {
		s.logger.Error("message handling failed", zap.String("client uuid", c.Uuid()), zap.Error(err))
	}
	s.reply(c, domain.Error, domain.ErrorPayload{Code: domain.ErrorCode(err), Reason: err.Error()})
}

func (s *server) reply(c *client, msgType domain.MessageType, payload any) {
	if err := c.WriteMessage(domain.Message{Type: msgType, Payload: payload}); err != nil {
		s.logger.Warn("failed to reply", zap.String("client uuid", c.Uuid()), zap.Error(err))
	}
}
