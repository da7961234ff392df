package model

import "time"

// SessionStep is the navigation step a quiz session is on
type SessionStep string

const (
	StepIntro     SessionStep = "intro"
	StepQuestions SessionStep = "questions"
	StepMastery   SessionStep = "mastery"
	StepResults   SessionStep = "results"
)

// QuizSession is the caller-owned state of one quiz run.
// The engine never sees it; the service reads Answers and Mastery out of it.
type QuizSession struct {
	ID        string             `json:"id"`
	Step      SessionStep        `json:"step"`
	Answers   Answers            `json:"answers"`
	Mastery   *MasterySelections `json:"mastery,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// DimensionProgress counts answered questions for one dimension
type DimensionProgress struct {
	Dimension DimensionID `json:"dimension"`
	Answered  int         `json:"answered"`
	Total     int         `json:"total"`
}

// SessionProgress summarizes how far a session is through the question bank
type SessionProgress struct {
	SessionID  string              `json:"sessionId"`
	Step       SessionStep         `json:"step"`
	Answered   int                 `json:"answered"`
	Total      int                 `json:"total"`
	Dimensions []DimensionProgress `json:"dimensions"`
	Complete   bool                `json:"complete"`
}
