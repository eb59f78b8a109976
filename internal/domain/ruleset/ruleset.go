package ruleset

import "time"

// RuleSet is the archived form of the win patterns of one board size.
type RuleSet struct {
	BoardSize   int       `json:"board_size" bson:"board_size"`
	Patterns    [][]int   `json:"patterns" bson:"patterns"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
}

type SizesResponse struct {
	Sizes []int `json:"sizes"`
}
