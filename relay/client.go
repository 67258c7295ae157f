// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/zestdev/zest/dtos"
)

type client struct {
	httpClient *http.Client
	token      string
}

// NewClient builds the execution-tier client. The bearer token comes from
// RELAY_TOKEN. Boot and run calls are bounded; a slow execution tier is a
// failed call, not a hung request.
func NewClient() *client {
	return &client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: os.Getenv("RELAY_TOKEN"),
	}
}

func (c *client) do(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request to execution tier failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response body")
	}

	if resp.StatusCode >= 400 {
		return data, errors.Errorf("execution tier returned status %d", resp.StatusCode)
	}
	return data, nil
}

func (c *client) Boot(ctx context.Context, slug, version, branchName string) (dtos.BootResponse, error) {
	data, err := c.do(ctx, GetBootURL(slug, version), []byte("{}"), map[string]string{
		"X-Branch-Override": branchName,
	})
	if err != nil {
		return dtos.BootResponse{}, err
	}

	var resp dtos.BootResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return dtos.BootResponse{}, errors.Wrap(err, "could not parse boot response")
	}
	return resp, nil
}

func (c *client) Run(ctx context.Context, slug, version, filename, runID, branchName string, inputs map[string]any) ([]byte, error) {
	body, err := json.Marshal(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "could not serialize run inputs")
	}

	return c.do(ctx, GetRunURL(slug, version, filename), body, map[string]string{
		"X-Run-Id":          runID,
		"X-Branch-Override": branchName,
	})
}
