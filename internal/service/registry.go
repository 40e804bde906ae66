package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kotobadev/kotoba-sync/models"
)

// NaturalKeyFunc derives the duplicate-detection key from a serialized
// payload. An empty result means the instance carries no natural key.
type NaturalKeyFunc func(payload json.RawMessage) (string, error)

// MergeFunc combines a client payload and the current server payload into a
// single resolved payload.
type MergeFunc func(client, server json.RawMessage) (json.RawMessage, error)

// EntityRegistry holds the per-entity-type knowledge the sync engine needs:
// which types exist at all, how to derive their natural keys, and how to
// merge concurrent edits. The engine itself never interprets payloads except
// through these registered helpers.
type EntityRegistry struct {
	naturalKeys map[string]NaturalKeyFunc
	mergeFuncs  map[string]MergeFunc
}

// NewEntityRegistry returns a registry preloaded with the entity types the
// platform ships with: vocabulary, learning_progress, and word_list.
func NewEntityRegistry() *EntityRegistry {
	r := &EntityRegistry{
		naturalKeys: make(map[string]NaturalKeyFunc),
		mergeFuncs:  make(map[string]MergeFunc),
	}

	r.Register(models.EntityTypeVocabulary, vocabularyNaturalKey, nil)
	r.Register(models.EntityTypeLearningProgress, nil, mergeLearningProgress)
	r.Register(models.EntityTypeWordList, nil, mergeWordList)

	return r
}

// Register adds an entity type. naturalKey and merge may each be nil when the
// type has no natural key or no merge semantics.
func (r *EntityRegistry) Register(entityType string, naturalKey NaturalKeyFunc, merge MergeFunc) {
	if naturalKey != nil {
		r.naturalKeys[entityType] = naturalKey
	} else if _, ok := r.naturalKeys[entityType]; !ok {
		r.naturalKeys[entityType] = nil
	}
	if merge != nil {
		r.mergeFuncs[entityType] = merge
	}
}

// Known reports whether entityType is registered.
func (r *EntityRegistry) Known(entityType string) bool {
	_, ok := r.naturalKeys[entityType]
	return ok
}

// NaturalKey derives the natural key for one payload of the given type.
// Returns "" for types without a natural key.
func (r *EntityRegistry) NaturalKey(entityType string, payload json.RawMessage) (string, error) {
	fn := r.naturalKeys[entityType]
	if fn == nil {
		return "", nil
	}
	return fn(payload)
}

// Merge returns the registered merge function for entityType, or nil when the
// type has none and the caller must fall back to ServerWins.
func (r *EntityRegistry) Merge(entityType string) MergeFunc {
	return r.mergeFuncs[entityType]
}

func vocabularyNaturalKey(payload json.RawMessage) (string, error) {
	var v models.VocabularyPayload
	if err := json.Unmarshal(payload, &v); err != nil {
		return "", fmt.Errorf("decoding vocabulary payload: %w", err)
	}
	if v.Term == "" {
		return "", nil
	}
	return v.Term + "|" + v.LanguageCode, nil
}

// mergeLearningProgress combines two spaced-repetition records: counters take
// the maximum of both sides, timestamps take the latest.
func mergeLearningProgress(client, server json.RawMessage) (json.RawMessage, error) {
	var c, s models.LearningProgressPayload
	if err := json.Unmarshal(client, &c); err != nil {
		return nil, fmt.Errorf("decoding client learning progress: %w", err)
	}
	if err := json.Unmarshal(server, &s); err != nil {
		return nil, fmt.Errorf("decoding server learning progress: %w", err)
	}

	merged := models.LearningProgressPayload{
		VocabularyID:   c.VocabularyID,
		StudyCount:     max(c.StudyCount, s.StudyCount),
		CorrectCount:   max(c.CorrectCount, s.CorrectCount),
		MasteryLevel:   max(c.MasteryLevel, s.MasteryLevel),
		LastStudied:    latestTime(c.LastStudied, s.LastStudied),
		NextReviewDate: latestTime(c.NextReviewDate, s.NextReviewDate),
	}

	return json.Marshal(merged)
}

// mergeWordList unions the vocabulary entries of both sides, preserving the
// server's order for entries it already holds. Scalar fields take the client
// side, as the edit being applied.
func mergeWordList(client, server json.RawMessage) (json.RawMessage, error) {
	var c, s models.WordListPayload
	if err := json.Unmarshal(client, &c); err != nil {
		return nil, fmt.Errorf("decoding client word list: %w", err)
	}
	if err := json.Unmarshal(server, &s); err != nil {
		return nil, fmt.Errorf("decoding server word list: %w", err)
	}

	seen := make(map[int64]struct{}, len(s.VocabularyIDs)+len(c.VocabularyIDs))
	union := make([]int64, 0, len(s.VocabularyIDs)+len(c.VocabularyIDs))
	for _, id := range s.VocabularyIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	for _, id := range c.VocabularyIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}

	merged := models.WordListPayload{
		Name:          c.Name,
		Description:   c.Description,
		VocabularyIDs: union,
	}

	return json.Marshal(merged)
}

func latestTime(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.After(*b):
		return a
	default:
		return b
	}
}
