package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("同步失败: %w", New(KindFetch, "FetchInProgressMatches", cause))

	assert.True(t, Is(err, KindFetch))
	assert.False(t, Is(err, KindIngestion))
	assert.Equal(t, KindFetch, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindQuery))
}

func TestErrorf(t *testing.T) {
	err := Errorf(KindFormat, "decode", "items 不是数组: %s", "object")
	assert.EqualError(t, err, "format: decode: items 不是数组: object")
}
