package game

// Outcome is the winner state of a board relative to one player symbol.
type Outcome int

const (
	Undecided Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "undecided"
	}
}

// Result is the wire form: true, false or nil.
func (o Outcome) Result() *bool {
	var v bool
	switch o {
	case Won:
		v = true
	case Lost:
		v = false
	default:
		return nil
	}
	return &v
}

// PlayResponse is sent back on the play websocket after every request frame.
type PlayResponse struct {
	SessionID string     `json:"session_id"`
	Board     [][]string `json:"board,omitempty"`
	Result    *bool      `json:"result"`
	Error     string     `json:"error,omitempty"`
}
