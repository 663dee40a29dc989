package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"elibrary/src/internal/dates"
	"elibrary/src/internal/httpx"
)

var client httpx.Doer = &http.Client{Timeout: 10 * time.Second}

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

type olData struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
}

// FetchYear queries the OpenLibrary Books API for the publication year of
// the given ISBN.
func FetchYear(ctx context.Context, isbn string) (int, error) {
	data, err := fetchData(ctx, isbn)
	if err != nil {
		return 0, err
	}
	y := dates.ExtractYear(data.PublishDate)
	if y == 0 {
		return 0, fmt.Errorf("openlibrary: no publish date for ISBN:%s", isbn)
	}
	return y, nil
}

func fetchData(ctx context.Context, isbn string) (olData, error) {
	q := url.Values{}
	q.Set("bibkeys", "ISBN:"+isbn)
	q.Set("format", "json")
	q.Set("jscmd", "data")
	endpoint := "https://openlibrary.org/api/books?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return olData{}, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return olData{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return olData{}, fmt.Errorf("openlibrary: http %d: %s", resp.StatusCode, string(b))
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return olData{}, err
	}
	dataRaw, ok := raw["ISBN:"+isbn]
	if !ok || len(dataRaw) == 0 {
		return olData{}, fmt.Errorf("openlibrary: no data for ISBN:%s", isbn)
	}
	var data olData
	if err := json.Unmarshal(dataRaw, &data); err != nil {
		return olData{}, err
	}
	return data, nil
}
