package dispatcher

import (
	"context"
	"encoding/json"

	"tablehost/internal/v1/engine/bingo"
	"tablehost/internal/v1/engine/bigtwo"
	"tablehost/internal/v1/engine/boggle"
	"tablehost/internal/v1/engine/chess"
	"tablehost/internal/v1/engine/xiangqi"
	"tablehost/internal/v1/metrics"
	"tablehost/internal/v1/roommgr"
)

func (h *Hub) handleJoinGame(c *Client, msg Message) {
	var payload joinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.deliver(true, errorMessage("malformed join_game"))
		return
	}

	if !payload.Reconnect && h.limiter != nil {
		if !h.limiter.AllowFreshJoin(context.Background(), c.ip) {
			c.deliver(true, errorMessage("too many join attempts, try again shortly"))
			return
		}
	}

	roomID := payload.RoomID
	if roomID == "" {
		family, ok := gameFamilyFromType(payload.GameType)
		if !ok {
			c.deliver(true, errorMessage("unknown game type"))
			return
		}
		roomID = h.rooms.CreateRoom(family)
		metrics.ActiveRooms.WithLabelValues(string(family)).Inc()
	}

	res, err := h.rooms.JoinRoom(roomID, c, payload.PlayerName)
	if err != nil {
		c.deliver(true, errorMessage("room not found"))
		return
	}
	c.setSeat(roomID, payload.PlayerName, res.Color)

	c.deliver(true, marshal(EventJoined, joinedPayload{
		RoomID:      roomID,
		Color:       res.Color,
		Reconnected: res.Reconnected,
	}))

	var family roommgr.GameFamily
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		family = room.Family
		metrics.RoomOccupancy.WithLabelValues(roomID).Set(float64(len(room.Seats)))
		broadcastRoom(room, false, roomUpdateFor(room))
		sendGameStateTo(c, room)
	})

	if h.analytics != nil {
		h.analytics.Track("join", roomID, string(family), map[string]any{
			"name":        payload.PlayerName,
			"reconnected": res.Reconnected,
		})
	}
}

func (h *Hub) handleStartGame(c *Client) {
	roomID, _, _ := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}

	var family roommgr.GameFamily
	started := false
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		family = room.Family
		if room.Engine != nil {
			return
		}
		room.Engine = newEngine(room.Family, len(room.Seats))
		started = true
	})
	if !started {
		return
	}

	metrics.GamesStarted.WithLabelValues(string(family)).Inc()
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		broadcastRoom(room, true, marshal(EventGameStarted, engineState(room)))
	})
	if family == roommgr.FamilyBoggle {
		h.armBoggleTimer(roomID)
	}
	if h.analytics != nil {
		h.analytics.Track("start", roomID, string(family), nil)
	}
}

func engineState(room *roommgr.Room) any {
	switch e := room.Engine.(type) {
	case *chess.Engine:
		return e.State()
	case *xiangqi.Engine:
		return e.State()
	case *bigtwo.Engine:
		return e.State()
	case *boggle.Engine:
		return e.State()
	case *bingo.Engine:
		return e.State()
	default:
		return nil
	}
}

func (h *Hub) handleMakeMove(c *Client, msg Message) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}
	var payload makeMovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.deliver(true, errorMessage("malformed make_move"))
		return
	}

	h.finishCommand(roomID, func(room *roommgr.Room) (ok bool, reason string) {
		switch eng := room.Engine.(type) {
		case *chess.Engine:
			if !colorMatchesTurn(room.Family, color, eng.Turn()) {
				return false, "not your turn"
			}
			res := eng.Move(chessSquare(payload.From), chessSquare(payload.To), promotionByte(payload.Promotion))
			return res.OK, res.Reason
		case *xiangqi.Engine:
			if !colorMatchesTurn(room.Family, color, eng.Turn()) {
				return false, "not your turn"
			}
			res := eng.Move(xiangqiSquare(payload.From), xiangqiSquare(payload.To), promotionByte(payload.Promotion))
			return res.OK, res.Reason
		default:
			return false, "wrong game family for make_move"
		}
	}, c, roomID)
}

func (h *Hub) handleCdiPlay(c *Client, msg Message) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}
	var payload cdiPlayPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.deliver(true, errorMessage("malformed cdi_play"))
		return
	}

	h.finishCommand(roomID, func(room *roommgr.Room) (bool, string) {
		eng, ok := room.Engine.(*bigtwo.Engine)
		if !ok {
			return false, "wrong game family for cdi_play"
		}
		seat, ok := seatIndexForColor(room.Family, color)
		if !ok {
			return false, "not seated"
		}
		res := eng.Play(seat, cardIDs(payload.CardIds))
		return res.OK, res.Reason
	}, c, roomID)
}

func (h *Hub) handleCdiPass(c *Client) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}

	h.finishCommand(roomID, func(room *roommgr.Room) (bool, string) {
		eng, ok := room.Engine.(*bigtwo.Engine)
		if !ok {
			return false, "wrong game family for cdi_pass"
		}
		seat, ok := seatIndexForColor(room.Family, color)
		if !ok {
			return false, "not seated"
		}
		res := eng.Pass(seat)
		return res.OK, res.Reason
	}, c, roomID)
}

func (h *Hub) handleBoggleSubmit(c *Client, msg Message) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}
	var payload boggleSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.deliver(true, errorMessage("malformed boggle_submit"))
		return
	}

	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		eng, ok := room.Engine.(*boggle.Engine)
		if !ok {
			return
		}
		seat, ok := seatIndexForColor(room.Family, color)
		if !ok {
			return
		}
		res := eng.SubmitWord(seat, payload.Word)
		if res.OK {
			c.deliver(false, marshal(EventBoggleAccept, boggleAcceptPayload{Word: payload.Word}))
		} else {
			c.deliver(false, marshal(EventBoggleReject, boggleRejectPayload{Word: payload.Word, Reason: res.Reason}))
		}
		broadcastRoom(room, false, marshal(EventBoggleCounts, boggleCountsPayload{SubmissionCounts: eng.SubmissionCounts()}))
	})
}

func (h *Hub) handleBoggleEnd(c *Client) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}

	h.finishCommand(roomID, func(room *roommgr.Room) (bool, string) {
		seat, ok := seatIndexForColor(room.Family, color)
		if !ok || seat != 0 {
			return false, "only the host may end the round"
		}
		return endBoggleRound(room)
	}, c, roomID)
}

// endBoggleRound finalizes the room's Boggle engine. Shared by the
// host-initiated boggle_end handler and the room's round timer, so both
// paths funnel through the same scoring/broadcast bookkeeping.
func endBoggleRound(room *roommgr.Room) (bool, string) {
	eng, ok := room.Engine.(*boggle.Engine)
	if !ok {
		return false, "wrong game family for boggle_end"
	}
	eng.EndRound()
	return true, ""
}

func (h *Hub) handleBingoCall(c *Client) {
	roomID, _, color := c.seat()
	if roomID == "" {
		c.deliver(true, errorMessage("not in a room"))
		return
	}

	h.finishCommand(roomID, func(room *roommgr.Room) (bool, string) {
		eng, ok := room.Engine.(*bingo.Engine)
		if !ok {
			return false, "wrong game family for bingo_call"
		}
		seat, ok := seatIndexForColor(room.Family, color)
		if !ok {
			return false, "not seated"
		}
		res := eng.CallNumber(seat)
		return res.OK, res.Reason
	}, c, roomID)
}

// finishCommand runs mutate against the room's engine, reports rejection
// to the sender, and otherwise broadcasts the updated state and handles
// game-over bookkeeping (leaderboard credit, analytics, game_over event,
// detaching the engine pointer). c is nil for system-triggered mutations
// such as the Boggle round timer, which has no sender to report back to.
func (h *Hub) finishCommand(roomID string, mutate func(*roommgr.Room) (ok bool, reason string), c *Client, _ string) {
	var family roommgr.GameFamily
	var gameOver bool
	var winner string
	ok, reason := false, ""

	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		family = room.Family
		ok, reason = mutate(room)
		if !ok {
			return
		}
		broadcastGameState(room)
		if eng, isOver := room.Engine.(interface{ IsGameOver() bool }); isOver && eng.IsGameOver() {
			gameOver = true
			winner = winnerLabel(family, room)
			room.Engine = nil
		}
	})

	if !ok {
		if c != nil {
			c.deliver(true, invalidMoveMessage(reason))
		}
		return
	}

	if gameOver {
		h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
			broadcastRoom(room, true, marshal(EventGameOver, gameOverPayload{Winner: winner, Reason: "completed"}))
		})
		if winner != "" && h.board != nil {
			h.board.RecordWin(string(family), winner)
		}
		if h.analytics != nil {
			h.analytics.Track("end", roomID, string(family), map[string]any{"winner": winner})
		}
		metrics.GamesCompleted.WithLabelValues(string(family), "completed").Inc()
	}
}

func (h *Hub) handleRequestUndo(c *Client) {
	roomID, name, color := c.seat()
	if roomID == "" {
		return
	}
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		if _, ok := seatIndexForColor(room.Family, color); !ok {
			return
		}
		broadcastRoom(room, true, marshal(EventUndoRequested, undoRequestedPayload{From: name}))
	})
}

func (h *Hub) handleApproveUndo(c *Client) {
	roomID, _, color := c.seat()
	if roomID == "" {
		return
	}
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		if _, ok := seatIndexForColor(room.Family, color); !ok {
			return
		}
		switch eng := room.Engine.(type) {
		case *chess.Engine:
			eng.Undo()
		case *xiangqi.Engine:
			eng.Undo()
		default:
			return
		}
		broadcastGameState(room)
	})
}

func (h *Hub) handleDeclineUndo(c *Client) {
	roomID, _, color := c.seat()
	if roomID == "" {
		return
	}
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		if _, ok := seatIndexForColor(room.Family, color); !ok {
			return
		}
		broadcastRoom(room, true, Message{Event: EventUndoDeclined})
	})
}

func (h *Hub) handleResign(c *Client) {
	roomID, name, color := c.seat()
	if roomID == "" {
		return
	}

	var family roommgr.GameFamily
	h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
		family = room.Family
		if _, ok := seatIndexForColor(room.Family, color); !ok {
			return
		}
		winner := opposingPlayerName(room, color)
		broadcastRoom(room, true, marshal(EventGameOver, gameOverPayload{Winner: winner, Reason: "resignation"}))
		if winner != "" && h.board != nil {
			h.board.RecordWin(string(room.Family), winner)
		}
		room.Engine = nil
	})

	if h.analytics != nil {
		h.analytics.Track("resign", roomID, string(family), map[string]any{"name": name})
	}
	metrics.GamesCompleted.WithLabelValues(string(family), "resignation").Inc()
}

func opposingPlayerName(room *roommgr.Room, color string) string {
	for _, seat := range room.Seats {
		if seat.Color != color {
			return seat.Name
		}
	}
	return ""
}
