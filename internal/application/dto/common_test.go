package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, PageRequest{Limit: DefaultPageLimit}, NewPage(0, 0))
	assert.Equal(t, PageRequest{Limit: MaxPageLimit, Offset: 10}, NewPage(1000, 10))
	assert.Equal(t, PageRequest{Limit: 5}, NewPage(5, -3))
	assert.Equal(t, PageResponse{Limit: 5, Offset: 0, Count: 2}, NewPage(5, 0).Response(2))
}
