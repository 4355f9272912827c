package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/config"
)

// PredictClient talks to the external ML prediction service. It is built
// once at startup and injected into handlers, so the model stays loaded on
// the remote side and no per-request initialization happens here.
type PredictClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewPredictClient(cfg *config.Config, log *zap.Logger) *PredictClient {
	return &PredictClient{
		BaseURL: cfg.Predict.BaseURL,
		HTTPClient: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

// Prediction is the classifier's answer for a single image.
type Prediction struct {
	Label  string             `json:"label"`
	Scores map[string]float64 `json:"scores"`
}

// Predict posts the raw image bytes and decodes the classifier response.
func (c *PredictClient) Predict(ctx context.Context, imageName, contentType string, body io.Reader) (*Prediction, error) {
	endpoint := fmt.Sprintf("%s/predict?name=%s", c.BaseURL, imageName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn("prediction service returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return nil, fmt.Errorf("prediction service status %d", resp.StatusCode)
	}

	var pred Prediction
	if err := sonic.Unmarshal(respBody, &pred); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	return &pred, nil
}
