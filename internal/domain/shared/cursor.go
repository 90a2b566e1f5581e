package shared

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Cursor is the keyset position for cursor-paginated listings. It is encoded
// opaquely for clients; the (OccurredAt, ID) pair totally orders rows even
// when timestamps collide.
type Cursor struct {
	OccurredAt time.Time `json:"occurred_at"`
	ID         uuid.UUID `json:"id"`
}

// Encode serializes the cursor to an opaque URL-safe token
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque cursor token. A malformed token is a
// validation error, not an internal one.
func DecodeCursor(token string) (Cursor, error) {
	var c Cursor
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, NewValidationError("invalid cursor")
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, NewValidationError("invalid cursor")
	}
	if c.ID == uuid.Nil {
		return c, NewValidationError("invalid cursor")
	}
	return c, nil
}

// CursorPage is a keyset-paginated result. NextCursor is empty when HasMore
// is false.
type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}
