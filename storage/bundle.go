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

// Package storage packages version bundles and moves them in and out of the
// external object store. A bundle is a zip archive with one JSON-serialized
// script per entry - self-describing, so unpacking needs nothing beyond JSON
// parsing.
package storage

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/zestdev/zest/database/models"
)

// CorruptBundleError marks a bundle whose entry cannot be parsed. This is a
// consistency error: the bundle was written by us, so a bad entry indicates a
// bug, not bad user input.
type CorruptBundleError struct {
	Entry string
	Err   error
}

func (e *CorruptBundleError) Error() string {
	return fmt.Sprintf("corrupt bundle entry %q: %v", e.Entry, e.Err)
}

func (e *CorruptBundleError) Unwrap() error {
	return e.Err
}

type bundleEntry struct {
	Filename    string    `json:"filename"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Hash        string    `json:"hash"`
	IsRunnable  bool      `json:"isRunnable"`
	ConnectorID *string   `json:"connectorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func scriptName(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx]
	}
	return filename
}

// PackScripts serializes a script set into a zip bundle. The entry order
// follows the input slice; the bundle's identity comes from the content hash,
// not from the archive bytes.
func PackScripts(scripts []models.Script) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	for _, script := range scripts {
		entry := bundleEntry{
			Filename:    script.Filename,
			Name:        scriptName(script.Filename),
			Code:        script.Code,
			Hash:        script.Hash,
			IsRunnable:  script.IsRunnable,
			ConnectorID: script.ConnectorID,
			CreatedAt:   script.CreatedAt,
			UpdatedAt:   script.UpdatedAt,
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("could not serialize script %s: %w", script.Filename, err)
		}

		f, err := w.Create(script.Filename)
		if err != nil {
			return nil, fmt.Errorf("could not create bundle entry %s: %w", script.Filename, err)
		}
		if _, err := f.Write(data); err != nil {
			return nil, fmt.Errorf("could not write bundle entry %s: %w", script.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize bundle: %w", err)
	}

	return buf.Bytes(), nil
}

// UnpackScripts reconstructs the script set from a bundle. A zip-level
// failure or an unparsable entry is reported as a CorruptBundleError.
func UnpackScripts(data []byte) ([]models.Script, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &CorruptBundleError{Entry: "", Err: err}
	}

	scripts := make([]models.Script, 0, len(r.File))
	for _, zf := range r.File {
		raw, err := readZipFile(zf)
		if err != nil {
			return nil, &CorruptBundleError{Entry: zf.Name, Err: err}
		}

		var entry bundleEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, &CorruptBundleError{Entry: zf.Name, Err: err}
		}

		scripts = append(scripts, models.Script{
			Filename:    entry.Filename,
			Code:        entry.Code,
			Hash:        entry.Hash,
			IsRunnable:  entry.IsRunnable,
			ConnectorID: entry.ConnectorID,
		})
	}

	return scripts, nil
}

func readZipFile(zf *zip.File) ([]byte, error) {
	f, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
