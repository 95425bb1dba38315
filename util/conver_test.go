package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Conver(t *testing.T) {
	b := []byte("this is bad")
	s := Byte2Str(b)
	assert.Equal(t, "this is bad", s)
	assert.Equal(t, []byte("loss"), Str2bytes("loss"))
	assert.Len(t, Str2bytes(""), 0)
}
