package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
)

type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string, timeout time.Duration) *apiClient {
	return &apiClient{base: base, http: &http.Client{Timeout: timeout}}
}

// envelope mirrors the server's response shape.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type jobRow struct {
	ID          int64  `json:"id"`
	CreateDate  string `json:"create_date"`
	Company     string `json:"company"`
	JobPosition string `json:"job_position"`
	Link        string `json:"link"`
	Status      string `json:"status"`
}

type jobPage struct {
	Items      []jobRow `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int      `json:"total"`
	HasPrev    bool     `json:"has_prev"`
	HasNext    bool     `json:"has_next"`
}

type importSummary struct {
	Imported int `json:"imported"`
	Skipped  []struct {
		Line   int    `json:"line"`
		Reason string `json:"reason"`
	} `json:"skipped"`
}

func (c *apiClient) listJobs(ctx context.Context, page int, dateFrom, dateTo string) (jobPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if dateFrom != "" {
		q.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		q.Set("date_to", dateTo)
	}

	var out jobPage
	if err := c.getJSON(ctx, "/api/v1/jobs?"+q.Encode(), &out); err != nil {
		return jobPage{}, err
	}
	return out, nil
}

// exportCSV downloads the full CSV snapshot and returns the byte count.
func (c *apiClient) exportCSV(ctx context.Context, outPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/v1/jobs/export", nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("export failed: %s", resp.Status)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(f, resp.Body)
}

// importCSV uploads the file as multipart, showing a progress bar over the
// request body.
func (c *apiClient) importCSV(ctx context.Context, path string) (importSummary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return importSummary{}, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return importSummary{}, err
	}
	if _, err := part.Write(raw); err != nil {
		return importSummary{}, err
	}
	if err := mw.WriteField("confirm", "true"); err != nil {
		return importSummary{}, err
	}
	if err := mw.Close(); err != nil {
		return importSummary{}, err
	}

	bar := pb.Full.Start64(int64(body.Len()))
	reader := bar.NewProxyReader(&body)
	defer bar.Finish()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/v1/jobs/import", reader)
	if err != nil {
		return importSummary{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return importSummary{}, err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return importSummary{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return importSummary{}, fmt.Errorf("import failed: %s", env.Message)
	}

	var out importSummary
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return importSummary{}, err
		}
	}
	return out, nil
}

func (c *apiClient) deleteJobs(ctx context.Context, ids []int64) (int64, error) {
	payload, err := json.Marshal(map[string]any{"ids": ids, "confirm": true})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/api/v1/jobs", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("delete failed: %s", env.Message)
	}

	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return 0, err
		}
	}
	return out.Deleted, nil
}

func (c *apiClient) clearAll(ctx context.Context) error {
	payload := []byte(`{"confirm":true}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+"/api/v1/admin/data", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("clear failed: %s", env.Message)
	}
	return nil
}

func (c *apiClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed: %s", env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func decodeEnvelope(r io.Reader) (envelope, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("unexpected response: %w", err)
	}
	return env, nil
}
