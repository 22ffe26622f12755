package matching

import (
	"encoding/base64"
	"testing"
	"time"

	"kindred/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(score int, createdAt time.Time) Scored {
	id := uuid.New()

	return Scored{
		Match:   &entity.Match{CandidateID: id, CompatibilityScore: score},
		Profile: &entity.Profile{UserID: id, CreatedAt: createdAt},
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("score descending", func(t *testing.T) {
		t.Parallel()

		items := []Scored{scored(40, base), scored(90, base), scored(70, base)}
		Rank(items)

		assert.Equal(t, 90, items[0].Match.CompatibilityScore)
		assert.Equal(t, 70, items[1].Match.CompatibilityScore)
		assert.Equal(t, 40, items[2].Match.CompatibilityScore)
	})

	t.Run("equal scores break by newer account first", func(t *testing.T) {
		t.Parallel()

		older := scored(80, base)
		newer := scored(80, base.AddDate(0, 3, 0))

		items := []Scored{older, newer}
		Rank(items)

		assert.Equal(t, newer.Profile.UserID, items[0].Profile.UserID)
		assert.Equal(t, older.Profile.UserID, items[1].Profile.UserID)
	})

	t.Run("full tie breaks by candidate ID for a total order", func(t *testing.T) {
		t.Parallel()

		a := scored(80, base)
		b := scored(80, base)

		first := []Scored{a, b}
		second := []Scored{b, a}
		Rank(first)
		Rank(second)

		require.Len(t, first, 2)
		assert.Equal(t, first[0].Profile.UserID, second[0].Profile.UserID)
		assert.Equal(t, first[1].Profile.UserID, second[1].Profile.UserID)
	})
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]Scored, 5)
	for i := range items {
		items[i] = scored(100-i, base)
	}

	t.Run("first page carries a next token", func(t *testing.T) {
		t.Parallel()

		page, next := Paginate(items, 0, 2)
		require.Len(t, page, 2)
		require.NotEmpty(t, next)

		offset, err := DecodePageToken(next)
		require.NoError(t, err)
		assert.Equal(t, 2, offset)
	})

	t.Run("walking tokens covers the whole list exactly once", func(t *testing.T) {
		t.Parallel()

		var collected []Scored
		offset := 0
		for {
			page, next := Paginate(items, offset, 2)
			collected = append(collected, page...)
			if next == "" {
				break
			}

			var err error
			offset, err = DecodePageToken(next)
			require.NoError(t, err)
		}

		assert.Equal(t, items, collected)
	})

	t.Run("last partial page has no token", func(t *testing.T) {
		t.Parallel()

		page, next := Paginate(items, 4, 2)
		assert.Len(t, page, 1)
		assert.Empty(t, next)
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		t.Parallel()

		page, next := Paginate(items, 10, 2)
		assert.Empty(t, page)
		assert.Empty(t, next)
	})
}

func TestPageToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for _, offset := range []int{0, 1, 20, 4096} {
			got, err := DecodePageToken(EncodePageToken(offset))
			require.NoError(t, err)
			assert.Equal(t, offset, got)
		}
	})

	t.Run("empty token means offset zero", func(t *testing.T) {
		t.Parallel()

		got, err := DecodePageToken("")
		require.NoError(t, err)
		assert.Zero(t, got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"not base64":      "%%%",
			"wrong prefix":    base64.RawURLEncoding.EncodeToString([]byte("v2.10")),
			"missing offset":  base64.RawURLEncoding.EncodeToString([]byte("o1.")),
			"negative offset": base64.RawURLEncoding.EncodeToString([]byte("o1.-3")),
			"non numeric":     base64.RawURLEncoding.EncodeToString([]byte("o1.ten")),
		}
		for name, token := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				_, err := DecodePageToken(token)
				assert.ErrorIs(t, err, ErrInvalidPageToken)
			})
		}
	})
}
