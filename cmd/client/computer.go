package main

import (
	"context"
	"fmt"

	"github.com/kiryu-dev/board-games/internal/adapters/webapi"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
)

// playRest runs a game over the REST API: against the computer, or a local
// game where both sides share the terminal and '?' lets the computer move.
func playRest(addr string, kind domain.Kind, opts domain.CreateOptions, in *input) error {
	ctx := context.Background()
	repo := webapi.New("http://"+addr, "")
	health, err := repo.HealthCheck(ctx)
	if err != nil {
		return errors.WithMessage(err, "server health check")
	}
	if health.Status != "ok" {
		return errors.Errorf("server is not ready: %s", health.Status)
	}
	snapshot, err := repo.Create(ctx, kind, opts)
	if err != nil {
		return errors.WithMessage(err, "create game")
	}
	in.auto = !opts.VsComputer
	notice := ""
	for {
		printBoard(snapshot.Game.Board)
		if notice != "" {
			fmt.Println(notice)
			notice = ""
		}
		if snapshot.Winner != domain.NoResult {
			fmt.Println(restResult(snapshot.Winner, opts.VsComputer))
			return nil
		}
		if !opts.VsComputer {
			fmt.Printf("Ходит %s ('?' - ход компьютера)\n", snapshot.Game.CurrentPlayer)
		}
		var next *webapi.Snapshot
		action, err := askAction(in, kind, snapshot.Game)
		switch {
		case errors.Is(err, errAutoMove):
			next, err = repo.ComputerMove(ctx, kind, snapshot.GameUuid)
		case err != nil:
			return err
		default:
			next, err = repo.Apply(ctx, kind, snapshot.GameUuid, action)
		}
		switch {
		case domain.IsUserError(err) && !errors.Is(err, domain.ErrNotFound):
			notice = err.Error()
			if next, err = repo.Get(ctx, kind, snapshot.GameUuid); err != nil {
				return errors.WithMessage(err, "refresh game")
			}
			snapshot = next
		case err != nil:
			return errors.WithMessage(err, "apply action")
		default:
			snapshot = next
		}
	}
}

func restResult(winner domain.Result, vsComputer bool) string {
	switch {
	case vsComputer:
		return gameResult(winner, domain.X.String(), domain.Finished)
	case winner == domain.Draw:
		return drawGameResult
	default:
		return winGameResult + " " + string(winner)
	}
}

func askAction(in *input, kind domain.Kind, view webapi.GameView) (domain.ActionPayload, error) {
	if kind == domain.Morris && view.Phase == "moving" {
		cells, err := in.cells("Твой ход (откуда куда): ", 2)
		if err != nil {
			return domain.ActionPayload{}, err
		}
		return domain.ActionPayload{
			Type: domain.MoveAction,
			From: domain.IndexSquare(cells[0]),
			To:   domain.IndexSquare(cells[1]),
		}, nil
	}
	cells, err := in.cells("Твой ход: ", 1)
	if err != nil {
		return domain.ActionPayload{}, err
	}
	action := domain.ActionPayload{Type: domain.MoveAction, Position: &cells[0]}
	if kind == domain.Morris {
		action.Type = domain.PlaceAction
	}
	return action, nil
}
