// Package bertserve provides a classifier.Client backed by an HTTP model
// inference server hosting the fine-tuned BERT sequence classifier.
package bertserve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"linkshield/pkg/classifier"
	"linkshield/pkg/serrors"
)

// Client talks to the inference server's REST API and fulfills the
// classifier.Client interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs requests to the inference server
	baseURL    string       // baseURL is the server root, e.g. "http://bertserve:8501"
}

// Predict submits the URL to the inference server and decodes the class
// distribution. A 503 from the server maps to serrors.ErrUnavailable so the
// caller can fail open to the heuristic path.
func (c *Client) Predict(ctx context.Context, URL string) (classifier.Prediction, error) {
	type predictReq struct {
		URL string `json:"url"`
	}
	bodyBytes, err := json.Marshal(predictReq{URL: URL})
	if err != nil {
		return classifier.Prediction{}, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.baseURL+"/v1/predict",
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return classifier.Prediction{}, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifier.Prediction{}, serrors.Wrap(serrors.ErrUnavailable, err, "could not reach inference server")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifier.Prediction{}, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return classifier.Prediction{},
			serrors.With(serrors.ErrUnavailable, "model not loaded: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifier.Prediction{}, fmt.Errorf("predict failed: %s", strings.TrimSpace(string(b)))
	}

	var predictResp struct {
		Label         int       `json:"label"`
		Probabilities []float64 `json:"probabilities"`
	}
	if err := json.Unmarshal(b, &predictResp); err != nil {
		return classifier.Prediction{}, fmt.Errorf("could not decode response: %w", err)
	}
	if predictResp.Label != classifier.LabelBenign && predictResp.Label != classifier.LabelMalicious {
		return classifier.Prediction{}, fmt.Errorf("unexpected label %d", predictResp.Label)
	}
	if len(predictResp.Probabilities) != 2 {
		return classifier.Prediction{}, fmt.Errorf("expected 2 class probabilities, got %d", len(predictResp.Probabilities))
	}

	return classifier.Prediction{
		Label:         predictResp.Label,
		Probabilities: [2]float64{predictResp.Probabilities[0], predictResp.Probabilities[1]},
	}, nil
}

// Ensure Client conforms to the classifier.Client interface at compile time.
var _ classifier.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client to talk to the
// inference server at baseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
