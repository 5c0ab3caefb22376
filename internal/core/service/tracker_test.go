package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestAddSubmission(t *testing.T) {
	tracker := &UsageTracker{
		chats: make(map[int64]int),
		mutex: &sync.Mutex{},
	}

	tracker.AddSubmission(1)
	tracker.AddSubmission(1)
	tracker.AddSubmission(2)

	assert.Equal(t, 2, tracker.chats[1])
	assert.Equal(t, 1, tracker.chats[2])
}

func TestCheckLimit(t *testing.T) {
	dailyLimit := 3
	tests := []struct {
		name          string
		limit         int
		used          int
		expectAllowed bool
		expectMessage bool
		simulateErr   error
	}{
		{
			name:          "below limit",
			limit:         dailyLimit,
			used:          2,
			expectAllowed: true,
		},
		{
			name:          "at limit",
			limit:         dailyLimit,
			used:          3,
			expectAllowed: false,
			expectMessage: true,
		},
		{
			name:          "above limit with send error",
			limit:         dailyLimit,
			used:          7,
			expectAllowed: false,
			expectMessage: true,
			simulateErr:   assert.AnError,
		},
		{
			name:          "zero limit is unlimited",
			limit:         0,
			used:          100,
			expectAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendError: tt.simulateErr}
			tracker := &UsageTracker{
				chats:      map[int64]int{1: tt.used},
				mutex:      &sync.Mutex{},
				dailyLimit: tt.limit,
				sender:     mockSender,
			}

			result := tracker.CheckLimit(t.Context(), 1)
			assert.Equal(t, tt.expectAllowed, result)
			if tt.expectMessage {
				assert.Equal(t, 1, mockSender.callCount)
				expectedText := fmt.Sprintf(overLimit,
					tracker.dailyLimit, time.Until(getNextResetTime()).Truncate(time.Second))
				assert.Equal(t, expectedText, mockSender.sendReplies[0])
			} else {
				assert.Equal(t, 0, mockSender.callCount)
			}
		})
	}
}

func TestNewUsageTracker(t *testing.T) {
	viper.Set("telegram.daily_submission_limit", 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockSender := &mockTextSender{}
	tracker := NewUsageTracker(ctx, mockSender)

	assert.NotNil(t, tracker.chats)
	assert.Equal(t, 10, tracker.dailyLimit)
	assert.Equal(t, mockSender, tracker.sender)
}

func TestGetNextResetTime(t *testing.T) {
	now := time.Now()
	reset := getNextResetTime()
	assert.Equal(t, 0, reset.Hour())
	assert.Equal(t, 0, reset.Minute())
	assert.Equal(t, 0, reset.Second())
	assert.True(t, reset.After(now))
	assert.LessOrEqual(t, reset.Sub(now), 25*time.Hour)
}
