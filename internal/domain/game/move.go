package game

// @name MakeMoveRequest
type MakeMoveRequest struct {
	Board           [][]string `json:"board"`
	DifficultyLevel *int       `json:"difficultyLevel"`
	Symbol          string     `json:"symbol"`
}

// @name MakeMoveResponse
type MakeMoveResponse struct {
	Board [][]string `json:"board"`
}

// @name IsWinnerRequest
type IsWinnerRequest struct {
	Board  [][]string `json:"board"`
	Symbol string     `json:"symbol"`
}

// @name IsWinnerResponse
type IsWinnerResponse struct {
	Result *bool `json:"result"` // null while undecided
}
