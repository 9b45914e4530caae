package webapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

const (
	clientTimeout       = 5 * time.Second
	healthCheckEndpoint = "/health"
)

// repository talks to the REST API of the game server.
type repository struct {
	cli        *http.Client
	addr       string
	clientUuid string
}

func New(addr string, clientUuid string) repository {
	return repository{
		cli:        &http.Client{Timeout: clientTimeout},
		addr:       addr,
		clientUuid: clientUuid,
	}
}

func gamesEndpoint(kind domain.Kind) string {
	return "/api/" + string(kind) + "/games"
}

func (r repository) HealthCheck(ctx context.Context) (*domain.HealthCheckResponse, error) {
	result := new(domain.HealthCheckResponse)
	if err := r.call(ctx, http.MethodGet, healthCheckEndpoint, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r repository) Create(ctx context.Context, kind domain.Kind, opts domain.CreateOptions) (*Snapshot, error) {
	result := new(Snapshot)
	if err := r.call(ctx, http.MethodPost, gamesEndpoint(kind), opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r repository) Get(ctx context.Context, kind domain.Kind, gameUuid string) (*Snapshot, error) {
	result := new(Snapshot)
	if err := r.call(ctx, http.MethodGet, gamesEndpoint(kind)+"/"+gameUuid, nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r repository) Apply(ctx context.Context, kind domain.Kind, gameUuid string, action domain.ActionPayload) (*Snapshot, error) {
	result := new(Snapshot)
	if err := r.call(ctx, http.MethodPost, gamesEndpoint(kind)+"/"+gameUuid+"/actions", action, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r repository) ComputerMove(ctx context.Context, kind domain.Kind, gameUuid string) (*Snapshot, error) {
	result := new(Snapshot)
	if err := r.call(ctx, http.MethodPost, gamesEndpoint(kind)+"/"+gameUuid+"/computer", nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// call sends body as json and decodes the response into result. Error
// responses come back wrapped in the domain error matching their status.
func (r repository) call(ctx context.Context, method string, endpoint string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := jsoniter.Marshal(body)
		if err != nil {
			return errors.WithMessage(err, "marshal json body")
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.addr+endpoint, reader)
	if err != nil {
		return errors.WithMessagef(err, "new %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.clientUuid != "" {
		req.Header.Set(domain.ClientUuidHeader, r.clientUuid)
	}
	resp, err := r.cli.Do(req)
	if err != nil {
		return errors.WithMessagef(err, "call http endpoint '%s'", endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp)
	}
	if err := jsoniter.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.WithMessage(err, "decode json response body")
	}
	return nil
}

func responseError(resp *http.Response) error {
	var payload domain.ErrorPayload
	_ = jsoniter.NewDecoder(resp.Body).Decode(&payload)
	cause := domain.ErrorOfCode(payload.Code)
	switch {
	case cause != nil:
	case resp.StatusCode == http.StatusNotFound:
		cause = domain.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		cause = domain.ErrBadRequest
	default:
		return errors.Errorf("unexpected response status '%s': %s", resp.Status, payload.Reason)
	}
	if payload.Reason == "" {
		return cause
	}
	return errors.WithMessage(cause, payload.Reason)
}
