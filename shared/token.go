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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccessTokenSigner mints and verifies the short-lived tokens the schedule
// consumer uses to authenticate its run calls. A token binds a user, an app
// and an expiry; nothing is stored server side.
type AccessTokenSigner struct {
	secret []byte
}

func NewAccessTokenSigner(secret string) *AccessTokenSigner {
	return &AccessTokenSigner{secret: []byte(secret)}
}

func (s *AccessTokenSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *AccessTokenSigner) Sign(userID, appID uuid.UUID, ttl time.Duration) string {
	payload := fmt.Sprintf("%s:%s:%d", userID, appID, time.Now().Add(ttl).Unix())
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.sign(payload)
}

func (s *AccessTokenSigner) Verify(token string) (userID, appID uuid.UUID, err error) {
	encoded, mac, found := strings.Cut(token, ".")
	if !found {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed token")
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed token payload: %w", err)
	}
	payload := string(raw)

	if !hmac.Equal([]byte(s.sign(payload)), []byte(mac)) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid token signature")
	}

	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed token payload")
	}

	expiry, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed token expiry: %w", err)
	}
	if time.Now().Unix() > expiry {
		return uuid.Nil, uuid.Nil, fmt.Errorf("token expired")
	}

	userID, err = uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed user id: %w", err)
	}
	appID, err = uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed app id: %w", err)
	}

	return userID, appID, nil
}
