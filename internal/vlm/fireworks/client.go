package fireworks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"idextract/internal/vlm"
)

const extractionPrompt = "Classify the ID type as 'passport' or 'DL'. Then extract fields: " +
	"DL number, expiry, name, DOB, address, sex, height, weight, hair, eyes. " +
	"Also provide the face crop bounding box. " +
	"Detect if any part of the ID (text, photo, structure) appears generated or altered. " +
	"Output all in JSON, and include a final field named 'altered' with value true or false."

// Infer implements vlm.Inferrer against a Fireworks (OpenAI-compatible)
// chat/completions endpoint. It returns the model's message content as raw
// bytes; parsing and normalization are the caller's concern.
func (c *Client) Infer(ctx context.Context, imageDataURL string) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("vlm.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"payload_len", len(imageDataURL),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"response_format": map[string]any{
			"type":   "json_object",
			"schema": vlm.BuildIdentityJSONSchema(),
		},
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": extractionPrompt},
					{"type": "image_url", "image_url": map[string]any{"url": imageDataURL}},
				},
			},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.logger.Error("vlm.infer.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("vlm.infer.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("decode fireworks response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("vlm.infer.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("no choices in fireworks response")
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)

	// Validate against the schema for diagnostics only; a mismatch is
	// routine model noise and the lenient parser downstream degrades it.
	if vErr := vlm.ValidateJSONAgainstSchema(vlm.BuildIdentityJSONSchema(), []byte(content)); vErr != nil {
		c.logger.Warn("vlm.infer.schema_mismatch",
			"req_id", rid, "error", vErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}

	c.logger.Info("vlm.infer.ok",
		"req_id", rid,
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []byte(content), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fireworks http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Warn("fireworks response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fireworks status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
