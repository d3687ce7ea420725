package board

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Kind names the entity an identifier is generated for. It becomes the ID prefix.
type Kind string

const (
	KindBoard  Kind = "board"
	KindColumn Kind = "column"
	KindCard   Kind = "card"
)

// fallbackSeq is mixed into fallback IDs so two calls in the same millisecond never collide.
var fallbackSeq atomic.Uint64

// newRandom is swapped in tests to exercise the fallback path.
var newRandom = uuid.NewRandom

// NewID returns a fresh identifier of the form "<kind>-<uuid>".
// It never blocks and never fails: if no random UUID can be produced it falls back
// to "<kind>-<base36 millis>-<base36 sequence><hex suffix>".
func NewID(kind Kind) string {
	if kind == "" {
		kind = "id"
	}
	id, err := newRandom()
	if err == nil {
		return string(kind) + "-" + id.String()
	}
	return string(kind) + "-" + fallbackID(time.Now())
}

func fallbackID(now time.Time) string {
	seq := fallbackSeq.Add(1)
	suffix := make([]byte, 4)
	// Best effort: the sequence number alone keeps IDs distinct within the process.
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(now.UnixMilli(), 36) + "-" + strconv.FormatUint(seq, 36) + hex.EncodeToString(suffix)
}
