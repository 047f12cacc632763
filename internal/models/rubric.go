package models

// InterviewDimension is one rubric criterion judges score live.
type InterviewDimension struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"maxScore"`
	Order    int     `json:"order"`
	IsActive bool    `json:"isActive"`
}

// ScoreItem is an auxiliary score input (e.g. a written exam) folded into
// the final score outside live judging.
type ScoreItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"maxScore"`
	Order    int     `json:"order"`
	IsActive bool    `json:"isActive"`
}

// Question is an interview question the operator can put on the display.
type Question struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}
