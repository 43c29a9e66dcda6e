package model

import "math"

// BoardSize is the size of a purchased insulation board.
type BoardSize struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// DefaultBoardSize is the standard 910x1820 foam board.
var DefaultBoardSize = BoardSize{Width: 910, Length: 1820}

// InsulationBay is a run of bays of the same width along the room depth.
type InsulationBay struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
	Count int     `json:"count"`
	Last  bool    `json:"last"` // The narrower bay at the end of the room
}

// Area returns the covered area in square metres.
func (b InsulationBay) Area() float64 {
	return b.Width * b.Depth * float64(b.Count) / 1_000_000
}

// InsulationPiece is a cut size needed to fill the bays.
type InsulationPiece struct {
	Width         float64 `json:"width"`
	Length        float64 `json:"length"`
	Count         int     `json:"count"`
	PerBoardWidth int     `json:"per_board_width"` // Strips of this width one board yields
	Remainder     bool    `json:"remainder"`       // Shorter than a full board, closes the bay
	Last          bool    `json:"last"`
}

// PerBoard returns how many pieces one board yields in a simple grid.
func (p InsulationPiece) PerBoard(board BoardSize) int {
	if p.Width <= 0 || p.Length <= 0 {
		return 0
	}
	return int(math.Floor(board.Width/p.Width)) * int(math.Floor(board.Length/p.Length))
}

// InsulationSummary lists bays, cut pieces and an estimate of boards to buy.
type InsulationSummary struct {
	Board        BoardSize         `json:"board"`
	Bays         []InsulationBay   `json:"bays"`
	Pieces       []InsulationPiece `json:"pieces"`
	TotalPieces  int               `json:"total_pieces"`
	BoardsNeeded int               `json:"boards_needed"`
}

// TotalArea returns the covered area in square metres.
func (s InsulationSummary) TotalArea() float64 {
	var total float64
	for _, b := range s.Bays {
		total += b.Area()
	}
	return total
}

// CalculateInsulation splits every bay of the framing into board-length pieces plus a
// remainder piece along the room depth. Pieces wider than the board are listed as bays
// but get no cut pieces. The board estimate tiles each piece size on its own boards.
func CalculateInsulation(framing FramingLayout, board BoardSize) InsulationSummary {
	s := InsulationSummary{
		Board:  board,
		Bays:   []InsulationBay{},
		Pieces: []InsulationPiece{},
	}
	if framing.IsZero() || !positive(board.Width) || !positive(board.Length) {
		return s
	}

	if framing.StandardBays > 0 {
		s.addBay(InsulationBay{Width: framing.Spacing, Depth: framing.RoomDepth, Count: framing.StandardBays})
	}
	if framing.LastBayWidth > 0 {
		s.addBay(InsulationBay{Width: framing.LastBayWidth, Depth: framing.RoomDepth, Count: 1, Last: true})
	}

	for _, p := range s.Pieces {
		s.TotalPieces += p.Count
		if per := p.PerBoard(board); per > 0 {
			s.BoardsNeeded += (p.Count + per - 1) / per
		}
	}
	return s
}

func (s *InsulationSummary) addBay(bay InsulationBay) {
	s.Bays = append(s.Bays, bay)

	perWidth := int(math.Floor(s.Board.Width / bay.Width))
	if perWidth == 0 {
		return
	}
	full := int(math.Floor(bay.Depth / s.Board.Length))
	rest := bay.Depth - float64(full)*s.Board.Length

	if full > 0 {
		s.Pieces = append(s.Pieces, InsulationPiece{
			Width:         bay.Width,
			Length:        s.Board.Length,
			Count:         full * bay.Count,
			PerBoardWidth: perWidth,
			Last:          bay.Last,
		})
	}
	if rest > LengthTolerance {
		s.Pieces = append(s.Pieces, InsulationPiece{
			Width:         bay.Width,
			Length:        rest,
			Count:         bay.Count,
			PerBoardWidth: perWidth,
			Remainder:     true,
			Last:          bay.Last,
		})
	}
}
