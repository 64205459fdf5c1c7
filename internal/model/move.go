package model

// WSMove is a move request as it arrives from a client, in the frame of
// the side to move.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Rotate maps a move into the frame used after the board turns around.
func (m SimpleMove) Rotate() SimpleMove {
	return SimpleMove{From: m.From.Rotate(), To: m.To.Rotate()}
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
