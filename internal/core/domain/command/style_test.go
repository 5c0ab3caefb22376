package command

import (
	"context"
	"errors"
	"mural/internal/core/domain"
	"mural/internal/core/port"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockTextSender struct {
	messages []string
	err      error
}

func (m *MockTextSender) SendMessage(_ context.Context, _ int64, text string) (int, error) {
	m.messages = append(m.messages, text)
	return len(m.messages), m.err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

type MockAuthorizer struct {
	allowed bool
}

func (m *MockAuthorizer) IsAuthorized(_ context.Context, _ int64) bool {
	return m.allowed
}

type MockTracker struct {
	allowed     bool
	submissions int
}

func (m *MockTracker) AddSubmission(_ int64) {
	m.submissions++
}

func (m *MockTracker) CheckLimit(_ context.Context, _ int64) bool {
	return m.allowed
}

type MockPipeline struct {
	styles []string
	err    error
}

func (m *MockPipeline) Acquire(_ context.Context, _ domain.AssetSource) error {
	return nil
}

func (m *MockPipeline) SelectStyle(_ context.Context, style string) error {
	m.styles = append(m.styles, style)
	return m.err
}

func (m *MockPipeline) State() domain.PipelineState {
	return domain.PipelineState{}
}

type MockSessions struct {
	pipeline *MockPipeline
	chatIDs  []int64
}

func (m *MockSessions) Session(chatID int64) port.Pipeline {
	m.chatIDs = append(m.chatIDs, chatID)
	return m.pipeline
}

func newStyleFixture() (*Style, *MockSessions, *MockTextSender, *MockAuthorizer, *MockTracker) {
	sessions := &MockSessions{pipeline: &MockPipeline{}}
	ts := &MockTextSender{}
	auth := &MockAuthorizer{allowed: true}
	track := &MockTracker{allowed: true}

	return NewStyle(sessions, ts, auth, track, "/style"), sessions, ts, auth, track
}

func TestNewStyle(t *testing.T) {
	s, _, _, _, _ := newStyleFixture()

	assert.Equal(t, "/style", s.GetCommand())
}

func TestStyleRespond(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		wantStyle   string
	}{
		{
			description: "catalog name",
			text:        "/style Ghibli",
			wantStyle:   "Ghibli",
		},
		{
			description: "catalog name in any case",
			text:        "/style pixel art",
			wantStyle:   "Pixel Art",
		},
		{
			description: "custom style passes through",
			text:        "/style oil painting",
			wantStyle:   "oil painting",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			s, sessions, ts, _, track := newStyleFixture()

			err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: testCase.text})

			require.NoError(t, err)
			assert.Equal(t, []string{testCase.wantStyle}, sessions.pipeline.styles)
			assert.Equal(t, []int64{42}, sessions.chatIDs)
			assert.Equal(t, 1, track.submissions)
			assert.Empty(t, ts.messages)
		})
	}
}

func TestStyleRespondWithoutArgsSendsUsage(t *testing.T) {
	s, sessions, ts, _, track := newStyleFixture()

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/style"})

	require.NoError(t, err)
	require.Len(t, ts.messages, 1)
	assert.Contains(t, ts.messages[0], "Usage: /style <style>")
	assert.Contains(t, ts.messages[0], "P. Branco")
	assert.Empty(t, sessions.pipeline.styles)
	assert.Zero(t, track.submissions)
}

func TestStyleRespondUnauthorized(t *testing.T) {
	s, sessions, _, auth, _ := newStyleFixture()
	auth.allowed = false

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/style Cyber"})

	require.NoError(t, err)
	assert.Empty(t, sessions.pipeline.styles)
}

func TestStyleRespondLimitReached(t *testing.T) {
	s, sessions, _, _, track := newStyleFixture()
	track.allowed = false

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/style Cyber"})

	require.NoError(t, err)
	assert.Empty(t, sessions.pipeline.styles)
	assert.Zero(t, track.submissions)
}

func TestStyleRespondNoAsset(t *testing.T) {
	s, sessions, _, _, track := newStyleFixture()
	sessions.pipeline.err = domain.ErrNoAssetSelected

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/style Cyber"})

	require.NoError(t, err)
	assert.Zero(t, track.submissions, "nothing was submitted")
}

func TestStyleRespondPipelineError(t *testing.T) {
	s, sessions, _, _, track := newStyleFixture()
	sessions.pipeline.err = errors.New("boom")

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/style Cyber"})

	require.Error(t, err)
	assert.Zero(t, track.submissions)
}

func TestStylesRespond(t *testing.T) {
	ts := &MockTextSender{}
	s := NewStyles(ts, "/styles", "/style")

	assert.Equal(t, "/styles", s.GetCommand())

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42, Text: "/styles"})

	require.NoError(t, err)
	require.Len(t, ts.messages, 1)
	for _, option := range domain.Styles() {
		assert.Contains(t, ts.messages[0], "- "+option.Name+"\n")
	}
	assert.Contains(t, ts.messages[0], "/style <style>")
}

func TestStylesRespondSendError(t *testing.T) {
	ts := &MockTextSender{err: errors.New("blocked")}
	s := NewStyles(ts, "/styles", "/style")

	err := s.Respond(t.Context(), time.Second, &domain.Message{ChatID: 42})

	require.ErrorIs(t, err, domain.ErrSendingReplyFailed)
}
