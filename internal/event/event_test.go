package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "Resumed", typ: Resumed},
		{want: "ChunkCommitted", typ: ChunkCommitted},
		{want: "Completed", typ: Completed},
		{want: "Failed", typ: Failed},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Zero(t, e.Index)
	assert.Zero(t, e.Bytes)
	assert.Zero(t, e.Committed)
	assert.Zero(t, e.Percent)
	require.NoError(t, e.Err)
}

func TestEventFields(t *testing.T) {
	now := time.Now()
	e := Event{
		Type:      ChunkCommitted,
		Timestamp: now,
		Index:     2,
		Bytes:     4194304,
		Committed: 25165824,
		Percent:   100,
	}
	assert.Equal(t, ChunkCommitted, e.Type)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, int64(2), e.Index)
	assert.Equal(t, int64(4194304), e.Bytes)
	assert.Equal(t, int64(25165824), e.Committed)
	assert.Equal(t, 100, e.Percent)
}
