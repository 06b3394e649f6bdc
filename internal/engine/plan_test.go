package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkPlan(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		offset    int64
		chunkSize int64
		want      int64
	}{
		{name: "FreshCopyExactMultiple", size: 8192, offset: 0, chunkSize: 4096, want: 2},
		{name: "FreshCopyWithRemainder", size: 10000, offset: 0, chunkSize: 4096, want: 3},
		{name: "ResumeMidway", size: 10000, offset: 4096, chunkSize: 4096, want: 2},
		{name: "SingleShortChunk", size: 100, offset: 0, chunkSize: 4096, want: 1},
		{name: "TwentyFourMiBInTenMiBChunks", size: 25165824, offset: 0, chunkSize: 10485760, want: 3},
		{name: "TwentyFourMiBResumedOneChunk", size: 25165824, offset: 10485760, chunkSize: 10485760, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chunkPlan(tt.size, tt.offset, tt.chunkSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChunkPlan_AlreadyComplete(t *testing.T) {
	got, err := chunkPlan(8192, 8192, 4096)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestChunkPlan_EmptySource(t *testing.T) {
	got, err := chunkPlan(0, 0, 4096)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestChunkPlan_OffsetBeyondSize(t *testing.T) {
	_, err := chunkPlan(4096, 8192, 4096)
	require.ErrorIs(t, err, ErrResumeState)
}

func TestFeedIndices_AscendingOrder(t *testing.T) {
	out := make(chan int64, 8)
	require.NoError(t, feedIndices(context.Background(), 5, out))

	var got []int64
	for i := range out {
		got = append(got, i)
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, got)
}

func TestFeedIndices_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered with no consumer: the only way out is the done branch.
	out := make(chan int64)
	err := feedIndices(ctx, 5, out)
	require.ErrorIs(t, err, context.Canceled)

	// The channel must still be closed so downstream unwinds.
	_, ok := <-out
	assert.False(t, ok)
}
