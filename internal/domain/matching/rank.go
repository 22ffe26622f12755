package matching

import (
	"bytes"
	"encoding/base64"
	"sort"
	"strconv"

	"kindred/internal/domain/entity"
	"kindred/internal/errors"
)

// ErrInvalidPageToken is returned when a page token cannot be decoded.
var ErrInvalidPageToken = errors.New("invalid page token")

// pageTokenPrefix versions the token format so stale client tokens fail
// loudly instead of decoding into a wrong offset.
const pageTokenPrefix = "o1."

// Scored pairs a computed match with the candidate profile it belongs to.
// The profile's CreatedAt drives the documented tie-break.
type Scored struct {
	Match   *entity.Match
	Profile *entity.Profile
}

// Rank orders scored candidates for presentation: compatibility score
// descending, ties broken by candidate profile CreatedAt descending (newer
// accounts first), and finally by candidate ID bytes for a total order.
// The fixed tie-break keeps pagination stable across identical requests.
func Rank(items []Scored) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Match.CompatibilityScore != b.Match.CompatibilityScore {
			return a.Match.CompatibilityScore > b.Match.CompatibilityScore
		}
		if !a.Profile.CreatedAt.Equal(b.Profile.CreatedAt) {
			return a.Profile.CreatedAt.After(b.Profile.CreatedAt)
		}

		return bytes.Compare(a.Profile.UserID[:], b.Profile.UserID[:]) < 0
	})
}

// Paginate slices a ranked list. It returns the requested page and the token
// for the next one, or an empty token when the list is exhausted.
func Paginate(items []Scored, offset, pageSize int) (page []Scored, nextToken string) {
	if offset >= len(items) || pageSize <= 0 {
		return nil, ""
	}

	end := offset + pageSize
	if end >= len(items) {
		return items[offset:], ""
	}

	return items[offset:end], EncodePageToken(end)
}

// EncodePageToken renders an offset as an opaque token.
func EncodePageToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(pageTokenPrefix + strconv.Itoa(offset)))
}

// DecodePageToken parses a token produced by EncodePageToken. An empty token
// means offset zero.
func DecodePageToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidPageToken, err.Error())
	}

	decoded := string(raw)
	if len(decoded) <= len(pageTokenPrefix) || decoded[:len(pageTokenPrefix)] != pageTokenPrefix {
		return 0, errors.Wrap(ErrInvalidPageToken, "unrecognized token format")
	}

	offset, err := strconv.Atoi(decoded[len(pageTokenPrefix):])
	if err != nil || offset < 0 {
		return 0, errors.Wrap(ErrInvalidPageToken, "bad offset")
	}

	return offset, nil
}
