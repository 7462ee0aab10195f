package dispatcher

import (
	"tablehost/internal/v1/engine/bingo"
	"tablehost/internal/v1/engine/bigtwo"
	"tablehost/internal/v1/engine/boggle"
	"tablehost/internal/v1/engine/chess"
	"tablehost/internal/v1/engine/xiangqi"
	"tablehost/internal/v1/roommgr"
)

// roomUpdateFor builds the room_update payload from the room's current
// seat and spectator lists.
func roomUpdateFor(room *roommgr.Room) Message {
	players := make([]playerView, 0, len(room.Seats))
	for _, seat := range room.Seats {
		players = append(players, playerView{
			Name:      seat.Name,
			Color:     seat.Color,
			Connected: seat.Conn != nil,
		})
	}
	spectators := make([]string, 0, len(room.Spectators))
	for _, sp := range room.Spectators {
		spectators = append(spectators, sp.Name)
	}
	return marshal(EventRoomUpdate, roomUpdatePayload{Players: players, Spectators: spectators})
}

// broadcastRoom sends msg to every connected seat and spectator in the
// room. Priority controls which send channel is used.
func broadcastRoom(room *roommgr.Room, priority bool, msg Message) {
	data := msg
	for _, seat := range room.Seats {
		if seat.Conn == nil {
			continue
		}
		if cl, ok := seat.Conn.(*Client); ok {
			cl.deliver(priority, data)
		}
	}
	for _, sp := range room.Spectators {
		if sp.Conn == nil {
			continue
		}
		if cl, ok := sp.Conn.(*Client); ok {
			cl.deliver(priority, data)
		}
	}
}

// broadcastGameState sends the family-appropriate game_state message to
// every occupant. Big Two personalizes the payload per recipient seat, so
// it bypasses broadcastRoom and sends individually instead.
func broadcastGameState(room *roommgr.Room) {
	switch room.Family {
	case roommgr.FamilyChess:
		snap, ok := room.Engine.(*chess.Engine)
		if !ok {
			return
		}
		broadcastRoom(room, true, marshal(EventGameState, snap.State()))
	case roommgr.FamilyXiangqi:
		snap, ok := room.Engine.(*xiangqi.Engine)
		if !ok {
			return
		}
		broadcastRoom(room, true, marshal(EventGameState, snap.State()))
	case roommgr.FamilyBigTwo:
		eng, ok := room.Engine.(*bigtwo.Engine)
		if !ok {
			return
		}
		for i, seat := range room.Seats {
			if seat.Conn == nil {
				continue
			}
			cl, ok := seat.Conn.(*Client)
			if !ok {
				continue
			}
			cl.deliver(true, marshal(EventGameState, eng.PersonalizedState(i)))
		}
		for _, sp := range room.Spectators {
			if sp.Conn == nil {
				continue
			}
			if cl, ok := sp.Conn.(*Client); ok {
				cl.deliver(true, marshal(EventGameState, eng.PersonalizedState(-1)))
			}
		}
	case roommgr.FamilyBoggle:
		eng, ok := room.Engine.(*boggle.Engine)
		if !ok {
			return
		}
		broadcastRoom(room, true, marshal(EventGameState, eng.State()))
	case roommgr.FamilyBingo:
		eng, ok := room.Engine.(*bingo.Engine)
		if !ok {
			return
		}
		broadcastRoom(room, true, marshal(EventGameState, eng.State()))
	}
}

// winnerLabel turns a family's winner representation into the color/seat
// string game_over expects, or "" when there is no winner yet.
func winnerLabel(family roommgr.GameFamily, room *roommgr.Room) string {
	switch family {
	case roommgr.FamilyChess:
		if eng, ok := room.Engine.(*chess.Engine); ok {
			if w := eng.Winner(); w != nil {
				return *w
			}
		}
	case roommgr.FamilyXiangqi:
		if eng, ok := room.Engine.(*xiangqi.Engine); ok {
			if w := eng.Winner(); w != nil {
				return *w
			}
		}
	case roommgr.FamilyBigTwo:
		if eng, ok := room.Engine.(*bigtwo.Engine); ok {
			if w := eng.Winner(); w != nil {
				return seatName(room, *w)
			}
		}
	case roommgr.FamilyBoggle:
		if eng, ok := room.Engine.(*boggle.Engine); ok {
			if w := eng.Winner(); w != nil {
				return seatName(room, *w)
			}
		}
	case roommgr.FamilyBingo:
		if eng, ok := room.Engine.(*bingo.Engine); ok {
			if winners := eng.Winners(); len(winners) > 0 {
				return seatName(room, winners[0].Seat)
			}
		}
	}
	return ""
}

func seatName(room *roommgr.Room, seat int) string {
	if seat < 0 || seat >= len(room.Seats) {
		return ""
	}
	return room.Seats[seat].Name
}

// seatReclaimed reports whether the named seat already has a live
// connection again, so a stale disconnect timer doesn't announce a
// departure the player already walked back from.
func seatReclaimed(room *roommgr.Room, name string) bool {
	for _, seat := range room.Seats {
		if seat.Name == name {
			return seat.Conn != nil
		}
	}
	return false
}

// sendGameStateTo delivers the current game_state to a single client, used
// when a player (re)joins a room with a game already in progress.
func sendGameStateTo(c *Client, room *roommgr.Room) {
	if room.Engine == nil {
		return
	}
	switch room.Family {
	case roommgr.FamilyChess:
		if eng, ok := room.Engine.(*chess.Engine); ok {
			c.deliver(true, marshal(EventGameState, eng.State()))
		}
	case roommgr.FamilyXiangqi:
		if eng, ok := room.Engine.(*xiangqi.Engine); ok {
			c.deliver(true, marshal(EventGameState, eng.State()))
		}
	case roommgr.FamilyBigTwo:
		if eng, ok := room.Engine.(*bigtwo.Engine); ok {
			_, _, color := c.seat()
			seat, ok := seatIndexForColor(room.Family, color)
			if !ok {
				seat = -1
			}
			c.deliver(true, marshal(EventGameState, eng.PersonalizedState(seat)))
		}
	case roommgr.FamilyBoggle:
		if eng, ok := room.Engine.(*boggle.Engine); ok {
			c.deliver(true, marshal(EventGameState, eng.State()))
		}
	case roommgr.FamilyBingo:
		if eng, ok := room.Engine.(*bingo.Engine); ok {
			c.deliver(true, marshal(EventGameState, eng.State()))
		}
	}
}
