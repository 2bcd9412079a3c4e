package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	name   string
	result *Classification
	err    error
	calls  int
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	s.calls++
	return s.result, s.err
}

func TestKeywordClassifierMatchesCatalog(t *testing.T) {
	db := newTestDB(t)
	k := NewKeywordClassifier(NewFoodService(db))

	out, err := k.Classify(context.Background(), ClassifyInput{
		Description: "grilled chicken breast with white rice",
	})
	require.NoError(t, err)

	require.Len(t, out.Foods, 2)
	total := 0
	for _, f := range out.Foods {
		total += f.Calories
		assert.GreaterOrEqual(t, f.Confidence, 0.0)
		assert.LessOrEqual(t, f.Confidence, 1.0)
	}
	assert.Equal(t, total, out.TotalCalories)
}

func TestKeywordClassifierMatchesFilenameWords(t *testing.T) {
	db := newTestDB(t)
	k := NewKeywordClassifier(NewFoodService(db))

	out, err := k.Classify(context.Background(), ClassifyInput{
		Description: "IMG_fries_french_0231.jpg",
	})
	require.NoError(t, err)
	require.Len(t, out.Foods, 1)
	assert.Equal(t, "french fries", out.Foods[0].Name)
}

func TestKeywordClassifierNoMatch(t *testing.T) {
	db := newTestDB(t)
	k := NewKeywordClassifier(NewFoodService(db))

	_, err := k.Classify(context.Background(), ClassifyInput{Description: "zzzz"})
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = k.Classify(context.Background(), ClassifyInput{})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCannedClassifierAlwaysReturnsAFood(t *testing.T) {
	out, err := CannedClassifier{}.Classify(context.Background(), ClassifyInput{})
	require.NoError(t, err)
	require.NotEmpty(t, out.Foods)
	assert.Equal(t, out.TotalCalories, out.Foods[0].Calories)
	assert.GreaterOrEqual(t, out.Confidence, 0.0)
	assert.LessOrEqual(t, out.Confidence, 1.0)
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	first := &stubClassifier{name: "first", err: ErrNoMatch}
	second := &stubClassifier{name: "second", result: &Classification{
		Provider: "second",
		Foods:    []FoodInput{{Name: "apple", Calories: 95}},
	}}
	third := &stubClassifier{name: "third"}

	chain := NewClassifierChain(first, second, third)
	out, err := chain.Classify(context.Background(), ClassifyInput{Description: "apple"})
	require.NoError(t, err)

	assert.Equal(t, "second", out.Provider)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls, "chain must stop at the first success")
}

func TestChainFallsThroughProviderFailures(t *testing.T) {
	broken := &stubClassifier{name: "broken", err: errors.New("service unavailable")}
	chain := NewClassifierChain(broken, CannedClassifier{})

	out, err := chain.Classify(context.Background(), ClassifyInput{Description: "mystery"})
	require.NoError(t, err)
	assert.Equal(t, "canned", out.Provider)
}

func TestChainFailsClosedWhenEveryProviderFails(t *testing.T) {
	chain := NewClassifierChain(
		&stubClassifier{name: "a", err: ErrNoMatch},
		&stubClassifier{name: "b", err: errors.New("down")},
	)

	_, err := chain.Classify(context.Background(), ClassifyInput{Description: "anything"})
	assert.Error(t, err)
}
