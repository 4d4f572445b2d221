package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	body, err := Encode(map[string]any{"bookingId": 7, "subject": "Напоминание"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bookingId":7,"subject":"Напоминание"}`, string(body))
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode(make(chan int))
	assert.ErrorIs(t, err, ErrEncode)
}
