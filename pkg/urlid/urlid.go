package urlid

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Kind selects what a compound identifier is built from.
type Kind int

const (
	// NameOnly identifiers are just the slug ("annual-report").
	NameOnly Kind = iota
	// IDOnly identifiers are just the key ("42").
	IDOnly
	// IDName identifiers join key and slug ("42-annual-report").
	IDName
)

// IntID renders an integer primary key.
func IntID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UUIDHex renders a UUID as 32 hex characters without dashes.
func UUIDHex(u uuid.UUID) string {
	return hex.EncodeToString(u[:])
}

// UUIDBase58 renders a UUID as a 21–22 character base58 string.
func UUIDBase58(u uuid.UUID) string {
	return base58.Encode(u[:])
}

// UUIDBase64 renders a UUID as a 22 character unpadded URL-safe base64
// string.
func UUIDBase64(u uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Join combines a rendered key with a slug. An empty slug yields the key
// alone.
func Join(id, name string) string {
	if name == "" {
		return id
	}
	return id + "-" + name
}

// Format builds the identifier for the given kind.
func Format(kind Kind, key, name string) string {
	switch kind {
	case IDOnly:
		return key
	case IDName:
		return Join(key, name)
	default:
		return name
	}
}

// ParseInt extracts the leading integer key from a compound identifier.
// The slug portion after the first "-" is ignored. Malformed keys return
// ok=false.
func ParseInt(s string) (int64, bool) {
	head, _, _ := strings.Cut(s, "-")
	id, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ParseUUID extracts the leading UUID key from a compound identifier. It
// accepts the dashless hex, canonical dashed, base58, and base64 forms,
// each optionally followed by "-slug". Malformed keys return ok=false.
//
// The canonical and base64 forms can contain dashes themselves, so those
// are probed at their fixed widths before splitting at the first dash. A
// 22-character key that is valid in both compact alphabets decodes as
// base64; use ParseUUIDBase58 when the encoding is known.
func ParseUUID(s string) (uuid.UUID, bool) {
	if len(s) >= 36 && (len(s) == 36 || s[36] == '-') {
		if u, err := uuid.Parse(s[:36]); err == nil {
			return u, true
		}
	}
	if len(s) >= 22 && (len(s) == 22 || s[22] == '-') {
		if u, ok := ParseUUIDBase64(s[:22]); ok {
			return u, true
		}
	}

	head, _, _ := strings.Cut(s, "-")
	switch len(head) {
	case 32:
		if u, err := uuid.Parse(head); err == nil {
			return u, true
		}
	case 21, 22:
		if u, ok := ParseUUIDBase58(head); ok {
			return u, true
		}
	}
	return uuid.Nil, false
}

// ParseUUIDBase58 decodes a base58-encoded UUID. The slug portion, if any,
// must already be removed.
func ParseUUIDBase58(s string) (uuid.UUID, bool) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 16 {
		return uuid.Nil, false
	}
	return uuid.UUID(raw), true
}

// ParseUUIDBase64 decodes an unpadded URL-safe base64 UUID.
func ParseUUIDBase64(s string) (uuid.UUID, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(raw) != 16 {
		return uuid.Nil, false
	}
	return uuid.UUID(raw), true
}
