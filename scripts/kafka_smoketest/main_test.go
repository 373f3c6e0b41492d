package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	const id = "5b7c1f0e-7d7a-4c1b-9a55-3f2d1f7a0c11"
	assert.True(t, matches([]byte(`{"type":"notification.created","payload":{"id":"`+id+`"}}`), id))
	assert.False(t, matches([]byte(`{"type":"transaction.created","payload":{"id":"`+id+`"}}`), id))
	assert.False(t, matches([]byte(`{"type":"notification.created","payload":{"id":"other"}}`), id))
	assert.False(t, matches([]byte(`not json`), id))
}
