package service

import (
	"context"
	"errors"
	"testing"

	"kurazhelp-be/internal/constant"
	"kurazhelp-be/internal/dto"
	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/repository/memory"
	"kurazhelp-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply    string
	err      error
	payloads [][]llm.Message
}

func (f *fakeProvider) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	f.payloads = append(f.payloads, messages)
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

func newTestAssistant(p llm.Provider) IAssistantService {
	return NewAssistantService(nil, memory.NewTranscriptRepository(), p, nopLogger{})
}

func TestSendChatSuccessAppendsTwoTurns(t *testing.T) {
	p := &fakeProvider{reply: "the answer"}
	svc := newTestAssistant(p)
	userId := uuid.New()

	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message: "what is markdown?",
		Mode:    "chat",
	})
	require.NoError(t, err)

	// Exactly one user turn with the literal message and one assistant turn.
	require.Len(t, res.Turns, 2)
	assert.Equal(t, constant.RoleUser, res.Turns[0].Role)
	assert.Equal(t, "what is markdown?", res.Turns[0].Content)
	assert.Equal(t, constant.RoleAssistant, res.Turns[1].Role)
	assert.Equal(t, "the answer", res.Turns[1].Content)
	assert.False(t, res.Busy)
}

func TestSendChatPayloadShape(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	svc := newTestAssistant(p)

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hello",
		Mode:    "chat",
	})
	require.NoError(t, err)

	require.Len(t, p.payloads, 1)
	payload := p.payloads[0]
	require.Len(t, payload, 3)

	// Mode instruction leads, briefing precedes the user turn.
	assert.Equal(t, constant.RoleSystem, payload[0].Role)
	assert.Equal(t, constant.RoleSystem, payload[1].Role)
	assert.Equal(t, constant.DomainBriefing, payload[1].Content)
	assert.Equal(t, constant.RoleUser, payload[2].Role)
	assert.Equal(t, "hello", payload[2].Content)
}

func TestSendChatEmptyMessageNoNetworkCall(t *testing.T) {
	p := &fakeProvider{reply: "should never be used"}
	svc := newTestAssistant(p)

	res, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "   ",
		Mode:    "chat",
	})
	require.NoError(t, err)

	// Exactly one assistant notice, no user turn, no provider call.
	require.Len(t, res.Turns, 1)
	assert.Equal(t, constant.RoleAssistant, res.Turns[0].Role)
	assert.Equal(t, constant.EmptyRequestNotice, res.Turns[0].Content)
	assert.Empty(t, p.payloads)
}

func TestSendChatProviderErrorBecomesAssistantTurn(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	svc := newTestAssistant(p)

	res, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hi",
		Mode:    "chat",
	})
	require.NoError(t, err, "endpoint failures never escape the service")

	require.Len(t, res.Turns, 2)
	assert.Equal(t, constant.RoleAssistant, res.Turns[1].Role)
	assert.Contains(t, res.Turns[1].Content, "connection refused")
}

func TestSendChatEmptyCompletionNotice(t *testing.T) {
	p := &fakeProvider{reply: "   "}
	svc := newTestAssistant(p)

	res, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hi",
		Mode:    "chat",
	})
	require.NoError(t, err)

	require.Len(t, res.Turns, 2)
	assert.Equal(t, constant.EmptyCompletionNotice, res.Turns[1].Content)
}

func TestSendChatBusyFlagClearsAfterError(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	svc := newTestAssistant(p)
	userId := uuid.New()

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "a", Mode: "chat"})
	require.NoError(t, err)

	// Second call proceeds: the busy flag did not stick.
	p.err = nil
	p.reply = "fine now"
	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "b", Mode: "chat"})
	require.NoError(t, err)
	assert.Equal(t, "fine now", res.Turns[len(res.Turns)-1].Content)
}

// blockingProvider parks Chat until release is closed and signals entry so
// tests can interleave a second request with certainty.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	b.entered <- struct{}{}
	<-b.release
	return "done", nil
}

func (b *blockingProvider) Name() string { return "blocking" }

func TestSendChatRejectsConcurrentRequest(t *testing.T) {
	p := &blockingProvider{entered: make(chan struct{}, 4), release: make(chan struct{})}
	svc := newTestAssistant(p)
	userId := uuid.New()

	type outcome struct {
		res *dto.SendChatResponse
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "first", Mode: "chat"})
		first <- outcome{res, err}
	}()

	// Wait until the first call is inside the provider, then submit another.
	<-p.entered
	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "second", Mode: "chat"})
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(p.release)
	r := <-first
	require.NoError(t, r.err)
	assert.Equal(t, "done", r.res.Turns[len(r.res.Turns)-1].Content)

	// The flag cleared with the first call, so a fresh request goes through.
	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "third", Mode: "chat"})
	require.NoError(t, err)
	assert.Equal(t, "done", res.Turns[len(res.Turns)-1].Content)
}

func TestSendChatTranscriptAccumulates(t *testing.T) {
	p := &fakeProvider{reply: "r1"}
	svc := newTestAssistant(p)
	userId := uuid.New()

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "m1", Mode: "chat"})
	require.NoError(t, err)

	p.reply = "r2"
	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "m2", Mode: "chat"})
	require.NoError(t, err)

	require.Len(t, res.Turns, 4)

	// Prior turns were replayed in the second payload.
	require.Len(t, p.payloads, 2)
	second := p.payloads[1]
	assert.Equal(t, "m1", second[1].Content)
	assert.Equal(t, "r1", second[2].Content)
}

func TestDropClearsTranscript(t *testing.T) {
	p := &fakeProvider{reply: "r"}
	svc := newTestAssistant(p)
	userId := uuid.New()

	_, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{Message: "m", Mode: "chat"})
	require.NoError(t, err)

	svc.Drop(userId.String())

	res, err := svc.GetTranscript(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, res.Turns)
}

func TestSendChatUnknownModeFallsBackToChat(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	svc := newTestAssistant(p)

	res, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hello",
		Mode:    "nonsense",
	})
	require.NoError(t, err)
	require.Len(t, res.Turns, 2)
	assert.Equal(t, "hello", p.payloads[0][len(p.payloads[0])-1].Content)
}
