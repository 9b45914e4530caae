package ws

import (
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, http.StatusOK, domain.HealthCheckResponse{
		Status:      "ok",
		Connections: s.clients.Len(),
	})
}

func (s *server) createGame(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := decodeBody[domain.CreateOptions](r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validateStruct(opts); err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.games.Create(r.Context(), kind, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJson(w, http.StatusCreated, snapshot)
}

func (s *server) getGame(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.games.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJson(w, http.StatusOK, snapshot)
}

func (s *server) applyAction(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	payload, err := decodeBody[domain.ActionPayload](r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.validateStruct(payload); err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.games.Apply(r.Context(), actionRequest(kind, r.PathValue("id"), payload,
		strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJson(w, http.StatusOK, snapshot)
}

func (s *server) computerMove(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	snapshot, err := s.games.ComputerMove(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJson(w, http.StatusOK, snapshot)
}

func actionRequest(kind domain.Kind, gameUuid string, payload domain.ActionPayload, clientUuid string) domain.ActionRequest {
	return domain.ActionRequest{
		Kind:       kind,
		GameUuid:   gameUuid,
		Type:       payload.Type,
		Position:   payload.Position,
		From:       payload.From,
		To:         payload.To,
		Player:     payload.Player,
		ClientUuid: clientUuid,
	}
}

// decodeBody treats an empty body as the zero value.
func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	err := jsoniter.NewDecoder(r.Body).Decode(&v)
	switch {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return v, errors.WithMessagef(domain.ErrBadRequest, "decode json body: %v", err)
	}
	return v, nil
}

func (s *server) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return errors.WithMessage(domain.ErrBadRequest, err.Error())
	}
	return nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMove), errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJson(w, status, domain.ErrorPayload{Code: domain.ErrorCode(err), Reason: err.Error()})
}

func (s *server) writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}
