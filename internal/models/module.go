package models

import "time"

// Module represents a learning module: a bundle of flashcards and quiz
// questions about one baseball concept
type Module struct {
	ModuleID     int64     `json:"moduleId"`
	Title        string    `json:"title"`
	Topic        string    `json:"topic"`
	Concept      string    `json:"concept"`
	Difficulty   int       `json:"difficulty"`
	Sport        string    `json:"sport"`
	NumQuestions int       `json:"num_questions"`
	CreatorID    string    `json:"userId"`
	CreatedAt    time.Time `json:"created_at"`
}

// Flashcard is a term/definition pair belonging to a module
type Flashcard struct {
	FlashcardID int64  `json:"flashcardId"`
	ModuleID    int64  `json:"moduleId"`
	Term        string `json:"term"`
	Definition  string `json:"definition"`
	OrderIndex  int    `json:"order_index"`
}

// Question is a four-option multiple-choice question belonging to a module
type Question struct {
	QuestionID         int64  `json:"questionId"`
	ModuleID           int64  `json:"moduleId"`
	Content            string `json:"content"`
	Option1            string `json:"option1"`
	Option2            string `json:"option2"`
	Option3            string `json:"option3"`
	Option4            string `json:"option4"`
	CorrectOptionIndex int    `json:"correct_option_index"`
	OrderIndex         int    `json:"order_index"`
}

// UserModule links a user to a module in their library, with completion status
type UserModule struct {
	UserID   string `json:"userId"`
	ModuleID int64  `json:"moduleId"`
	Status   bool   `json:"status"`
}

// ModuleSummary is one row of a user's module listing: the module joined
// with its completion status and creator attribution
type ModuleSummary struct {
	ModuleID        int64     `json:"moduleId"`
	Title           string    `json:"title"`
	Topic           string    `json:"topic"`
	Concept         string    `json:"concept"`
	Difficulty      int       `json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatorUsername string    `json:"creator_username"`
	Status          bool      `json:"status"`
}

// ModuleDetail is a module with its full content, creator attribution and
// the requesting user's completion status (nil when the module is not in
// the user's library)
type ModuleDetail struct {
	Module
	CreatorUsername string      `json:"creator_username"`
	Status          *bool       `json:"status,omitempty"`
	Flashcards      []Flashcard `json:"flashcards"`
	Questions       []Question  `json:"questions"`
}

// PageMetadata describes one page of a paginated listing
type PageMetadata struct {
	TotalCount  int  `json:"total_count"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}
