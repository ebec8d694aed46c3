package store

import "time"

type BattleMove struct {
	Seq    int    `json:"seq"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Color  string `json:"color"`
	Player string `json:"player"`
}

// BattleRecord is one finished battle. Winner is BLACK, WHITE or NONE and
// Reason is WIN, DRAW or OPPONENT_LEFT.
type BattleRecord struct {
	ID        string       `json:"id"`
	RoomID    string       `json:"room_id"`
	BlackName string       `json:"black_name"`
	WhiteName string       `json:"white_name"`
	Winner    string       `json:"winner"`
	Reason    string       `json:"reason"`
	MoveCount int          `json:"move_count"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Moves     []BattleMove `json:"moves,omitempty"`
}
