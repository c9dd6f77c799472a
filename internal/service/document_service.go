package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kurazhelp-be/internal/dto"
	"kurazhelp-be/internal/entity"
	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/repository/specification"
	"kurazhelp-be/internal/repository/unitofwork"
	"kurazhelp-be/pkg/events"
	pkgNats "kurazhelp-be/pkg/nats"
	"kurazhelp-be/pkg/textutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	placeholderTitlePrefix = "Untitled Document "
	placeholderContent     = "# New Document\n\nStart writing here..."
)

type IDocumentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateContentRequest) (*dto.UpdateDocumentResponse, error)
	UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateTitleRequest) (*dto.UpdateDocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *documentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := strings.TrimSpace(req.Title)
	content := req.Content
	if title == "" {
		count, err := uow.DocumentRepository().Count(ctx, specification.DocumentOwnedByUser{UserID: userId})
		if err != nil {
			return nil, err
		}
		title = fmt.Sprintf("%s%d", placeholderTitlePrefix, count+1)
	}
	if content == "" {
		content = placeholderContent
	}

	now := time.Now()
	doc := entity.Document{
		Id:         uuid.New(),
		Title:      title,
		Content:    content,
		WordCount:  textutil.WordCount(content),
		UserId:     userId,
		CreatedAt:  now,
		LastEdited: now,
	}

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, userId)
	s.publishAudit(ctx, events.TypeDocumentCreated, map[string]interface{}{
		"document_id": doc.Id,
		"title":       doc.Title,
		"user_id":     userId,
	})

	return &dto.CreateDocumentResponse{Id: doc.Id}, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.DocumentOwnedByUser{UserID: userId},
		specification.ByLastEditedDesc{},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}
	return toDocumentResponse(doc), nil
}

func (s *documentService) UpdateContent(ctx context.Context, userId uuid.UUID, req *dto.UpdateContentRequest) (*dto.UpdateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	// Word count is derived from content in the same write so the pair can
	// never diverge.
	doc.Content = req.Content
	doc.WordCount = textutil.WordCount(req.Content)
	doc.LastEdited = time.Now()

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, userId)

	return &dto.UpdateDocumentResponse{
		Id:         doc.Id,
		WordCount:  doc.WordCount,
		LastEdited: doc.LastEdited,
	}, nil
}

func (s *documentService) UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateTitleRequest) (*dto.UpdateDocumentResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		// Rejected before any read; nothing is written.
		s.log.Warn("document", "ignored empty title update", map[string]interface{}{
			"document_id": req.Id,
			"user_id":     userId,
		})
		return nil, fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	doc.Title = title
	doc.LastEdited = time.Now()

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, userId)

	return &dto.UpdateDocumentResponse{
		Id:         doc.Id,
		WordCount:  doc.WordCount,
		LastEdited: doc.LastEdited,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.DocumentOwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.notifyChanged(ctx, userId)
	s.publishAudit(ctx, events.TypeDocumentDeleted, map[string]interface{}{
		"document_id": id,
		"title":       doc.Title,
		"user_id":     userId,
	})

	return nil
}

func (s *documentService) notifyChanged(ctx context.Context, userId uuid.UUID) {
	payload, err := json.Marshal(dto.DocumentChangedMessage{UserId: userId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("document", "failed to publish document change", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *documentService) publishAudit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// Audit events are auxiliary; a publish failure never fails the request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("document", "failed to publish audit event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:         d.Id,
		Title:      d.Title,
		Content:    d.Content,
		WordCount:  d.WordCount,
		CreatedAt:  d.CreatedAt,
		LastEdited: d.LastEdited,
	}
}
