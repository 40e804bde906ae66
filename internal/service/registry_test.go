package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotobadev/kotoba-sync/models"
)

func TestEntityRegistry_Known(t *testing.T) {
	registry := NewEntityRegistry()

	assert.True(t, registry.Known(models.EntityTypeVocabulary))
	assert.True(t, registry.Known(models.EntityTypeLearningProgress))
	assert.True(t, registry.Known(models.EntityTypeWordList))
	assert.False(t, registry.Known("grammar_point"))
}

func TestEntityRegistry_VocabularyNaturalKey(t *testing.T) {
	registry := NewEntityRegistry()

	key, err := registry.NaturalKey(models.EntityTypeVocabulary, json.RawMessage(`{"term":"猫","language_code":"ja"}`))
	require.NoError(t, err)
	assert.Equal(t, "猫|ja", key)

	// A payload without a term carries no natural key.
	key, err = registry.NaturalKey(models.EntityTypeVocabulary, json.RawMessage(`{"language_code":"ja"}`))
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = registry.NaturalKey(models.EntityTypeVocabulary, json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestEntityRegistry_TypesWithoutNaturalKey(t *testing.T) {
	registry := NewEntityRegistry()

	key, err := registry.NaturalKey(models.EntityTypeLearningProgress, json.RawMessage(`{"vocabulary_id":1}`))
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestMergeLearningProgress(t *testing.T) {
	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	client, err := json.Marshal(models.LearningProgressPayload{
		VocabularyID: 42,
		StudyCount:   10,
		CorrectCount: 4,
		MasteryLevel: 2,
		LastStudied:  &newer,
	})
	require.NoError(t, err)

	server, err := json.Marshal(models.LearningProgressPayload{
		VocabularyID:   42,
		StudyCount:     8,
		CorrectCount:   7,
		MasteryLevel:   3,
		LastStudied:    &older,
		NextReviewDate: &older,
	})
	require.NoError(t, err)

	mergedRaw, err := mergeLearningProgress(client, server)
	require.NoError(t, err)

	var merged models.LearningProgressPayload
	require.NoError(t, json.Unmarshal(mergedRaw, &merged))

	assert.Equal(t, int64(42), merged.VocabularyID)
	assert.Equal(t, 10, merged.StudyCount)
	assert.Equal(t, 7, merged.CorrectCount)
	assert.Equal(t, 3, merged.MasteryLevel)
	require.NotNil(t, merged.LastStudied)
	assert.True(t, merged.LastStudied.Equal(newer))
	require.NotNil(t, merged.NextReviewDate)
	assert.True(t, merged.NextReviewDate.Equal(older))
}

func TestMergeWordList(t *testing.T) {
	client, err := json.Marshal(models.WordListPayload{
		Name:          "JLPT N4",
		Description:   "renamed on the phone",
		VocabularyIDs: []int64{3, 1, 9},
	})
	require.NoError(t, err)

	server, err := json.Marshal(models.WordListPayload{
		Name:          "N4 words",
		VocabularyIDs: []int64{1, 2, 3},
	})
	require.NoError(t, err)

	mergedRaw, err := mergeWordList(client, server)
	require.NoError(t, err)

	var merged models.WordListPayload
	require.NoError(t, json.Unmarshal(mergedRaw, &merged))

	// Entries union with the server's order first; scalars take the client
	// side as the edit being applied.
	assert.Equal(t, []int64{1, 2, 3, 9}, merged.VocabularyIDs)
	assert.Equal(t, "JLPT N4", merged.Name)
	assert.Equal(t, "renamed on the phone", merged.Description)
}

func TestMergeWordList_BadPayload(t *testing.T) {
	_, err := mergeWordList(json.RawMessage(`{`), json.RawMessage(`{}`))
	assert.Error(t, err)
}
