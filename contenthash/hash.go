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

// Package contenthash computes the deterministic content addresses used
// throughout the versioning subsystem. An app hash is a pure function of the
// app's identity fields and the set of its script hashes - never of wall
// clock time, row ordering or any other ambient state.
package contenthash

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// VersionLength is the number of hex characters of the full hash that make up
// a version string. Version strings appear in run/boot URLs, so they are kept
// short; lookups resolve them with a prefix match against the stored hash.
const VersionLength = 8

// ScriptHash pairs a script id with its content hash.
type ScriptHash struct {
	ID   uuid.UUID
	Hash string
}

// writeField writes a length-prefixed field so that concatenated inputs can
// never be confused with each other ("ab"+"c" vs "a"+"bc").
func writeField(h *blake3.Hasher, field []byte) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(field)))
	h.Write(length[:]) // nolint:errcheck // blake3 never returns an error
	h.Write(field)     // nolint:errcheck
}

// HashScript computes the content hash of a single script. It depends on the
// script id, its filename and its code - nothing else.
func HashScript(id uuid.UUID, filename, code string) string {
	h := blake3.New()
	writeField(h, id[:])
	writeField(h, []byte(filename))
	writeField(h, []byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

// HashApp computes the content hash of a whole app from its identity fields
// and the hashes of its scripts. The script hashes may be passed in any
// order; they are sorted by script id before hashing so the result only
// depends on the set of (id, hash) pairs.
func HashApp(id uuid.UUID, name string, scripts []ScriptHash) string {
	sorted := make([]ScriptHash, len(scripts))
	copy(sorted, scripts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	h := blake3.New()
	writeField(h, id[:])
	writeField(h, []byte(name))
	for _, s := range sorted {
		writeField(h, s.ID[:])
		writeField(h, []byte(s.Hash))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SecretHash is one (key, encrypted value) pair of an app's secret set. Only
// the ciphertext enters the hash domain - plaintext secret values are never
// hashed.
type SecretHash struct {
	Key            string
	EncryptedValue string
}

// HashSecrets computes a hash over an app's secret set. The pairs are sorted
// by key, so the result is insensitive to retrieval order.
func HashSecrets(secrets []SecretHash) string {
	sorted := make([]SecretHash, len(secrets))
	copy(sorted, secrets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	h := blake3.New()
	for _, s := range sorted {
		writeField(h, []byte(s.Key))
		writeField(h, []byte(s.EncryptedValue))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VersionFromHash derives the short version string from a full app hash. The
// version string is a strict prefix of the hash, so a version can always be
// resolved back to its Version row with a starts-with match.
func VersionFromHash(hash string) string {
	if len(hash) < VersionLength {
		return hash
	}
	return hash[:VersionLength]
}

// ValidVersion reports whether s has the shape of a derived version string:
// exactly VersionLength lowercase hex characters. Anything else cannot have
// come out of VersionFromHash and must not reach a prefix query.
func ValidVersion(s string) bool {
	if len(s) != VersionLength {
		return false
	}
	for _, c := range []byte(s) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
