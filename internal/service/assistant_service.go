package service

import (
	"context"
	"errors"
	"strings"
	gosync "sync"
	"time"

	"kurazhelp-be/internal/constant"
	"kurazhelp-be/internal/dto"
	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/prompt"
	"kurazhelp-be/internal/repository/memory"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"
	"kurazhelp-be/pkg/llm"
	"kurazhelp-be/pkg/store"

	"github.com/google/uuid"
)

// ErrRequestInFlight is returned when a user submits a new request while a
// previous one is still awaiting its completion.
var ErrRequestInFlight = errors.New("a request is already in progress")

type IAssistantService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetTranscript(ctx context.Context, userId uuid.UUID) (*dto.GetTranscriptResponse, error)
	ClearTranscript(userId uuid.UUID)
	Drop(userID string)
}

type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	transcripts *memory.TranscriptRepository
	provider    llm.Provider
	log         logger.ILogger

	busyMu gosync.Mutex
	busy   map[uuid.UUID]bool
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	transcripts *memory.TranscriptRepository,
	provider llm.Provider,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:  uowFactory,
		transcripts: transcripts,
		provider:    provider,
		log:         log,
		busy:        make(map[uuid.UUID]bool),
	}
}

func (s *assistantService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if err := s.acquireBusy(userId); err != nil {
		return nil, err
	}
	// The busy flag clears in every outcome, including panics upstream.
	defer s.releaseBusy(userId)

	mode := prompt.Mode(req.Mode)
	if !mode.Valid() {
		mode = prompt.ModeChat
	}

	documentText := s.loadDocumentText(ctx, userId, req.DocumentId)
	systemInstruction, userContent := prompt.Build(mode, documentText, req.Message)

	transcript := s.getOrCreateTranscript(userId)

	// An empty payload after templating is rejected locally: one assistant
	// notice, no user turn, no network call.
	if strings.TrimSpace(userContent) == "" {
		transcript.Append(constant.RoleAssistant, constant.EmptyRequestNotice)
		s.transcripts.Save(userId.String(), transcript)
		return s.toResponse(transcript, false), nil
	}

	// The payload carries the templated content; the visible transcript
	// carries the literal message.
	payload := s.buildPayload(systemInstruction, transcript, userContent)
	transcript.Append(constant.RoleUser, req.Message)

	reply, err := s.provider.Chat(ctx, payload,
		llm.WithTemperature(constant.DefaultTemperature),
		llm.WithMaxTokens(constant.DefaultMaxTokens),
	)

	switch {
	case err != nil:
		s.log.Error("assistant", "completion call failed", map[string]interface{}{
			"user_id": userId,
			"mode":    string(mode),
			"error":   err.Error(),
		})
		transcript.Append(constant.RoleAssistant, "Sorry, something went wrong while contacting the AI: "+err.Error())
	case strings.TrimSpace(reply) == "":
		transcript.Append(constant.RoleAssistant, constant.EmptyCompletionNotice)
	default:
		transcript.Append(constant.RoleAssistant, reply)
	}

	s.transcripts.Save(userId.String(), transcript)
	return s.toResponse(transcript, false), nil
}

func (s *assistantService) GetTranscript(ctx context.Context, userId uuid.UUID) (*dto.GetTranscriptResponse, error) {
	transcript := s.getOrCreateTranscript(userId)

	s.busyMu.Lock()
	busy := s.busy[userId]
	s.busyMu.Unlock()

	res := s.toResponse(transcript, busy)
	return &dto.GetTranscriptResponse{Turns: res.Turns, Busy: res.Busy}, nil
}

func (s *assistantService) ClearTranscript(userId uuid.UUID) {
	s.transcripts.Delete(userId.String())
}

// Drop implements TranscriptDropper for logout and account deletion.
func (s *assistantService) Drop(userID string) {
	s.transcripts.Delete(userID)
	if id, err := uuid.Parse(userID); err == nil {
		s.releaseBusy(id)
	}
}

func (s *assistantService) acquireBusy(userId uuid.UUID) error {
	s.busyMu.Lock()
	defer s.busyMu.Unlock()
	if s.busy[userId] {
		return ErrRequestInFlight
	}
	s.busy[userId] = true
	return nil
}

func (s *assistantService) releaseBusy(userId uuid.UUID) {
	s.busyMu.Lock()
	delete(s.busy, userId)
	s.busyMu.Unlock()
}

func (s *assistantService) getOrCreateTranscript(userId uuid.UUID) *store.Transcript {
	if t, ok := s.transcripts.Get(userId.String()); ok {
		return t
	}
	t := &store.Transcript{
		System: store.Turn{
			Role:      constant.RoleSystem,
			Content:   constant.DomainBriefing,
			CreatedAt: time.Now(),
		},
	}
	s.transcripts.Save(userId.String(), t)
	return t
}

// buildPayload assembles the outbound turn list: the mode instruction leads,
// visible history follows, then the transcript's standing system turn (the
// briefing) and the templated user content. The standing turn never enters
// the visible history.
func (s *assistantService) buildPayload(systemInstruction string, t *store.Transcript, userContent string) []llm.Message {
	payload := make([]llm.Message, 0, len(t.History)+3)
	payload = append(payload, llm.Message{Role: constant.RoleSystem, Content: systemInstruction})
	for _, turn := range t.History {
		payload = append(payload, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	payload = append(payload,
		llm.Message{Role: t.System.Role, Content: t.System.Content},
		llm.Message{Role: constant.RoleUser, Content: userContent},
	)
	return payload
}

func (s *assistantService) loadDocumentText(ctx context.Context, userId uuid.UUID, documentId *uuid.UUID) string {
	if documentId == nil {
		return ""
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: *documentId},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		s.log.Warn("assistant", "failed to load active document", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
		return ""
	}
	if doc == nil {
		return ""
	}
	return doc.Content
}

func (s *assistantService) toResponse(transcript *store.Transcript, busy bool) *dto.SendChatResponse {
	turns := make([]dto.TranscriptTurn, len(transcript.History))
	for i, t := range transcript.History {
		turns[i] = dto.TranscriptTurn{
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		}
	}
	return &dto.SendChatResponse{Turns: turns, Busy: busy}
}
