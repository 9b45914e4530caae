package main

import (
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/board-games/internal/adapters/webapi"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/kiryu-dev/board-games/pkg/utils"
	"github.com/pkg/errors"
)

type onlineClient struct {
	conn     *websocket.Conn
	in       *input
	kind     domain.Kind
	gameUuid string
	mark     string
	view     webapi.GameView
}

func playOnline(addr string, kind domain.Kind, in *input) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return errors.WithMessage(err, "dial")
	}
	defer func() {
		_ = conn.Close()
	}()
	c := &onlineClient{
		conn: conn,
		in:   in,
		kind: kind,
		view: webapi.GameView{Board: domain.EmptyBoard(), CurrentPlayer: domain.X, Phase: "placing"},
	}
	return c.handleActions()
}

func (c *onlineClient) handleActions() error {
	for {
		msg := new(domain.Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return errors.WithMessage(err, "read json msg")
		}
		switch msg.Type {
		case domain.Hello:
			err := c.conn.WriteJSON(domain.Message{Type: domain.Join, Payload: domain.QueuePayload{Kind: c.kind}})
			if err != nil {
				return errors.WithMessage(err, "write json msg")
			}
		case domain.Waiting:
			fmt.Println("Ожидание соперника...")
		case domain.GameStarted:
			v, err := utils.Recode[domain.GameStartedPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'GameStartedPayload' type")
			}
			c.gameUuid, c.mark = v.GameUuid, v.Mark
			if err := c.render(""); err != nil {
				return err
			}
		case domain.StateUpdated:
			v, err := utils.Recode[domain.StatePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'StatePayload' type")
			}
			if c.view, err = utils.Recode[webapi.GameView](v.Game); err != nil {
				return errors.WithMessage(err, "unmarshal game state")
			}
			if err := c.render(""); err != nil {
				return err
			}
		case domain.MoveRejected:
			v, err := utils.Recode[domain.MoveRejectedPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'MoveRejectedPayload' type")
			}
			if err := c.render(v.Reason); err != nil {
				return err
			}
		case domain.GameEnded:
			v, err := utils.Recode[domain.GameEndedPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'GameEndedPayload' type")
			}
			fmt.Println(gameResult(v.Winner, c.mark, v.Reason))
			return nil
		case domain.Error:
			fmt.Printf("ошибка: %v\n", msg.Payload)
		}
	}
}

// render draws the board and asks for a move when it's our turn.
func (c *onlineClient) render(notice string) error {
	printBoard(c.view.Board)
	if notice != "" {
		fmt.Println(notice)
	}
	if c.view.Winner != domain.NoResult || c.view.CurrentPlayer.String() != c.mark {
		fmt.Println("Ход соперника...")
		return nil
	}
	action, err := askAction(c.in, c.kind, c.view)
	if err != nil {
		return err
	}
	action.Kind, action.GameUuid = c.kind, c.gameUuid
	if err := c.conn.WriteJSON(domain.Message{Type: domain.Action, Payload: action}); err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}
