//go:build unit
// +build unit

package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToInt(t *testing.T) {
	assert.Equal(t, 42, ConvertToInt("42"))
	assert.Equal(t, 0, ConvertToInt("forty-two"))
	assert.Equal(t, -3, ConvertToInt("-3"))
}

func TestConvertToInt64(t *testing.T) {
	assert.Equal(t, int64(1099511627776), ConvertToInt64("1099511627776"))
	assert.Equal(t, int64(0), ConvertToInt64(""))
}

func TestConvertToBool(t *testing.T) {
	v, ok := ConvertToBool("true")
	assert.True(t, v)
	assert.True(t, ok)

	_, ok = ConvertToBool("maybe")
	assert.False(t, ok)
}
