// Package classifier defines the interface and data types for the pretrained
// binary URL classifier consumed by the scoring pipeline. The model itself is
// a black box: input is the raw URL string, output is a label index plus a
// probability distribution over the two classes.
package classifier

import (
	"context"

	"linkshield/pkg/domain"
)

// Label indices of the binary classifier.
const (
	// LabelBenign is class 0.
	LabelBenign = 0
	// LabelMalicious is class 1.
	LabelMalicious = 1
)

// Prediction is one classifier opinion about a URL.
type Prediction struct {
	// Label is the argmax class index, 0 or 1.
	Label int
	// Probabilities is the class distribution; the two entries sum to 1.
	Probabilities [2]float64
}

// Verdict maps the label to a domain verdict. The classifier never emits
// "suspicious" directly; that state only arises from the sensitivity
// adjustment engine downstream.
func (p Prediction) Verdict() domain.Verdict {
	if p.Label == LabelMalicious {
		return domain.VerdictMalicious
	}

	return domain.VerdictBenign
}

// Confidence is the probability of the predicted class.
func (p Prediction) Confidence() float64 {
	if p.Label >= 0 && p.Label < len(p.Probabilities) {
		return p.Probabilities[p.Label]
	}

	return 0
}

// Client is the abstraction over the model runtime. Implementations must be
// safe for concurrent use; inference errors are returned as-is and the
// pipeline treats any of them as "classifier unavailable" for that request.
type Client interface {
	// Predict runs one inference for the given URL.
	Predict(ctx context.Context, URL string) (Prediction, error)
}
