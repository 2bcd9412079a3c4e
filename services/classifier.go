package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrNoMatch is returned by a provider that cannot produce a guess for the
// given input; the chain falls through to the next provider.
var ErrNoMatch = errors.New("no food match")

type ClassifyInput struct {
	ImageBytes  []byte
	Description string
}

// Classification is the fixed response shape every provider conforms to.
// Foods is never empty on success and Confidence stays within [0,1].
type Classification struct {
	Provider      string      `json:"provider"`
	Foods         []FoodInput `json:"foods"`
	TotalCalories int         `json:"total_calories"`
	Confidence    float64     `json:"confidence"`
}

type FoodClassifier interface {
	Name() string
	Classify(ctx context.Context, in ClassifyInput) (*Classification, error)
}

// ClassifierChain tries each provider in priority order and returns the first
// success. It fails only when every provider does.
type ClassifierChain struct {
	providers []FoodClassifier
}

func NewClassifierChain(providers ...FoodClassifier) *ClassifierChain {
	return &ClassifierChain{providers: providers}
}

func (c *ClassifierChain) Name() string { return "chain" }

func (c *ClassifierChain) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	var lastErr error = ErrNoMatch
	for _, p := range c.providers {
		out, err := p.Classify(ctx, in)
		if err == nil && out != nil && len(out.Foods) > 0 {
			return out, nil
		}
		if err != nil && !errors.Is(err, ErrNoMatch) {
			log.Printf("classifier %s failed: %v", p.Name(), err)
		}
		if err != nil {
			lastErr = err
		}
	}
	return nil, fmt.Errorf("all classifiers failed: %w", lastErr)
}

// KeywordClassifier matches catalog names against the description (or image
// filename) by substring; every matching entry becomes a food line.
type KeywordClassifier struct {
	foods *FoodService
}

func NewKeywordClassifier(foods *FoodService) *KeywordClassifier {
	return &KeywordClassifier{foods: foods}
}

func (k *KeywordClassifier) Name() string { return "keyword" }

func (k *KeywordClassifier) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	text := strings.ToLower(strings.TrimSpace(in.Description))
	if text == "" {
		return nil, ErrNoMatch
	}

	entries, err := k.foods.All(ctx)
	if err != nil {
		return nil, err
	}

	out := &Classification{Provider: k.Name(), Confidence: 0.7}
	for i := range entries {
		e := entries[i]
		name := strings.ToLower(e.Name)
		if !strings.Contains(text, name) && !containsAllWords(text, name) {
			continue
		}
		out.Foods = append(out.Foods, FoodInput{
			Name:        e.Name,
			Calories:    e.Calories,
			Protein:     e.Protein,
			Carbs:       e.Carbs,
			Fat:         e.Fat,
			Sodium:      e.Sodium,
			Sugar:       e.Sugar,
			ServingSize: e.ServingSize,
			Confidence:  0.7,
		})
		out.TotalCalories += e.Calories
	}
	if len(out.Foods) == 0 {
		return nil, ErrNoMatch
	}
	return out, nil
}

// containsAllWords lets "chicken grilled breast.jpg" still match the
// multi-word catalog entry.
func containsAllWords(text, name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// CannedClassifier is the tail of the chain: a fixed low-confidence guess so
// the classify endpoint never comes back empty-handed.
type CannedClassifier struct{}

func (CannedClassifier) Name() string { return "canned" }

func (CannedClassifier) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	return &Classification{
		Provider: "canned",
		Foods: []FoodInput{{
			Name:        "mixed meal",
			Calories:    400,
			ServingSize: "1 plate",
			Confidence:  0.2,
		}},
		TotalCalories: 400,
		Confidence:    0.2,
	}, nil
}
