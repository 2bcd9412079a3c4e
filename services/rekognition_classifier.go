package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionClassifier asks AWS Rekognition for image labels and resolves
// them against the food catalog. It only handles image inputs; text-only
// requests fall through to the keyword provider.
type RekognitionClassifier struct {
	client *rekognition.Client
	foods  *FoodService
}

func NewRekognitionClassifier(ctx context.Context, foods *FoodService) (*RekognitionClassifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{
		client: rekognition.NewFromConfig(cfg),
		foods:  foods,
	}, nil
}

func (r *RekognitionClassifier) Name() string { return "rekognition" }

func (r *RekognitionClassifier) Classify(ctx context.Context, in ClassifyInput) (*Classification, error) {
	if len(in.ImageBytes) == 0 {
		return nil, ErrNoMatch
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: in.ImageBytes},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	res := &Classification{Provider: r.Name()}
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		entry, err := r.foods.Get(ctx, *l.Name)
		if err != nil {
			continue
		}
		conf := float64(aws.ToFloat32(l.Confidence)) / 100
		res.Foods = append(res.Foods, FoodInput{
			Name:        entry.Name,
			Calories:    entry.Calories,
			Protein:     entry.Protein,
			Carbs:       entry.Carbs,
			Fat:         entry.Fat,
			Sodium:      entry.Sodium,
			Sugar:       entry.Sugar,
			ServingSize: entry.ServingSize,
			Confidence:  conf,
		})
		res.TotalCalories += entry.Calories
		if conf > res.Confidence {
			res.Confidence = conf
		}
	}
	if len(res.Foods) == 0 {
		return nil, ErrNoMatch
	}
	return res, nil
}
