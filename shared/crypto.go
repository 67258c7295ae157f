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
package shared

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
)

// ageCipher encrypts secret values with a single X25519 identity. The
// identity string (AGE-SECRET-KEY-1...) comes from the SECRETS_KEY
// environment variable; ciphertext is stored base64 encoded.
type ageCipher struct {
	identity *age.X25519Identity
}

func NewSecretCipherFromEnv() (SecretCipher, error) {
	key := strings.TrimSpace(os.Getenv("SECRETS_KEY"))
	if key == "" {
		return nil, fmt.Errorf("SECRETS_KEY is not set")
	}

	identity, err := age.ParseX25519Identity(key)
	if err != nil {
		return nil, fmt.Errorf("could not parse SECRETS_KEY: %w", err)
	}

	return &ageCipher{identity: identity}, nil
}

// NewSecretCipher is used by tests to construct a cipher from a fixed
// identity.
func NewSecretCipher(identity *age.X25519Identity) SecretCipher {
	return &ageCipher{identity: identity}
}

func (c *ageCipher) Encrypt(plaintext string) (string, error) {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, c.identity.Recipient())
	if err != nil {
		return "", err
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *ageCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext encoding: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(raw), c.identity)
	if err != nil {
		return "", err
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
