package models

import "time"

// Domain payload shapes. The sync engine treats payloads as opaque bytes;
// these structs are used only by registered per-type helpers (natural keys,
// merge functions) and by clients.

// VocabularyPayload is one vocabulary entry. Term plus LanguageCode form the
// natural key used for duplicate detection on Create.
type VocabularyPayload struct {
	Term         string `json:"term"`
	Reading      string `json:"reading,omitempty"`
	Translation  string `json:"translation,omitempty"`
	LanguageCode string `json:"language_code"`
	Notes        string `json:"notes,omitempty"`
	JLPTLevel    int    `json:"jlpt_level,omitempty"`
}

// LearningProgressPayload tracks spaced-repetition progress for one
// vocabulary entry. Counters are mergeable: concurrent edits from two
// devices combine by taking the maximum of counts and the latest timestamps.
type LearningProgressPayload struct {
	VocabularyID   int64      `json:"vocabulary_id"`
	StudyCount     int        `json:"study_count"`
	CorrectCount   int        `json:"correct_count"`
	MasteryLevel   int        `json:"mastery_level"`
	LastStudied    *time.Time `json:"last_studied,omitempty"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
}

// WordListPayload is a user-curated word list. Entries merge as a union.
type WordListPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	VocabularyIDs []int64 `json:"vocabulary_ids"`
}
