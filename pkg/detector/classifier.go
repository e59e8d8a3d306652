package detector

import (
	"context"

	"lintang/lightwatch/pkg/datastructure"
)

// Classifier maps one camera frame to a light state. The pipeline treats it
// as a black box: how pixels become a color is not this package's business.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (datastructure.LightState, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, image []byte) (datastructure.LightState, error)

func (f ClassifierFunc) Classify(ctx context.Context, image []byte) (datastructure.LightState, error) {
	return f(ctx, image)
}
