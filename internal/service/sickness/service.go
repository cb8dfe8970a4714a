package sickness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/file"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
)

const defaultDocumentName = "document.pdf"

type SicknessServiceImpl struct {
	sicknessRepo sickness.SicknessDeclarationRepository
	userRepo     user.UserRepository
	files        file.FileService
	email        email.EmailService
	notification notification.Service
}

func NewSicknessService(
	sicknessRepo sickness.SicknessDeclarationRepository,
	userRepo user.UserRepository,
	files file.FileService,
	emailService email.EmailService,
	notificationService notification.Service,
) sickness.SicknessService {
	return &SicknessServiceImpl{
		sicknessRepo: sicknessRepo,
		userRepo:     userRepo,
		files:        files,
		email:        emailService,
		notification: notificationService,
	}
}

func toResponse(d sickness.SicknessDeclaration) sickness.DeclarationResponse {
	return sickness.NewDeclarationResponse(d, leave.BusinessDays(d.StartDate, d.EndDate))
}

// List implements sickness.SicknessService.
func (s *SicknessServiceImpl) List(ctx context.Context, actor user.Actor, query sickness.ListQuery) ([]sickness.DeclarationResponse, error) {
	filter := sickness.Filter{Limit: query.Limit, Offset: query.Skip}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	declarations, err := s.sicknessRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sickness declarations: %w", err)
	}

	responses := make([]sickness.DeclarationResponse, 0, len(declarations))
	for _, d := range declarations {
		responses = append(responses, toResponse(d))
	}
	return responses, nil
}

func (s *SicknessServiceImpl) getAccessible(ctx context.Context, actor user.Actor, id string) (sickness.SicknessDeclaration, error) {
	d, err := s.sicknessRepo.GetByID(ctx, id)
	if err != nil {
		return sickness.SicknessDeclaration{}, err
	}
	if !actor.IsAdmin() && d.UserID != actor.UserID {
		return sickness.SicknessDeclaration{}, sickness.ErrNotOwner
	}
	return d, nil
}

// GetByID implements sickness.SicknessService. The first admin view marks the declaration as viewed.
func (s *SicknessServiceImpl) GetByID(ctx context.Context, actor user.Actor, id string) (sickness.DeclarationResponse, error) {
	d, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return sickness.DeclarationResponse{}, err
	}

	if actor.IsAdmin() && !d.ViewedByAdmin {
		first, err := s.sicknessRepo.MarkViewed(ctx, d.ID)
		if err != nil {
			return sickness.DeclarationResponse{}, fmt.Errorf("failed to mark declaration viewed: %w", err)
		}
		d.ViewedByAdmin = true
		if first {
			s.notifyViewed(ctx, actor, d)
		}
	}

	return toResponse(d), nil
}

// Create implements sickness.SicknessService.
func (s *SicknessServiceImpl) Create(ctx context.Context, actor user.Actor, req sickness.CreateDeclarationRequest) (sickness.DeclarationResponse, error) {
	if actor.IsAdmin() {
		return sickness.DeclarationResponse{}, sickness.ErrAdminCannotDeclare
	}
	if req.End.Before(req.Start) {
		return sickness.DeclarationResponse{}, sickness.ErrInvalidDateRange
	}
	if req.Document == nil {
		return sickness.DeclarationResponse{}, sickness.ErrDocumentRequired
	}

	doc, err := s.files.UploadSicknessDocument(ctx, actor.UserID, req.Document, req.DocumentName)
	if err != nil {
		return sickness.DeclarationResponse{}, err
	}

	documentName := cleanDocumentName(req.DocumentName)
	created, err := s.sicknessRepo.Create(ctx, sickness.SicknessDeclaration{
		UserID:           actor.UserID,
		StartDate:        req.Start,
		EndDate:          req.End,
		Description:      req.Description,
		DocumentFilename: &documentName,
		DocumentPath:     &doc.Path,
	})
	if err != nil {
		if delErr := s.files.DeleteFile(ctx, doc.Path); delErr != nil {
			slog.Error("Failed to remove orphaned sickness document", "path", doc.Path, "error", delErr)
		}
		return sickness.DeclarationResponse{}, fmt.Errorf("failed to create sickness declaration: %w", err)
	}

	if err := s.sendDeclaration(ctx, created, doc.Data); err != nil {
		slog.Warn("Sickness declaration email not sent", "declaration_id", created.ID, "error", err)
	} else {
		created.EmailSent = true
	}

	return toResponse(created), nil
}

// OpenDocument implements sickness.SicknessService. It returns the stored PDF and its original filename.
func (s *SicknessServiceImpl) OpenDocument(ctx context.Context, actor user.Actor, id string) (io.ReadCloser, string, error) {
	d, err := s.getAccessible(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if d.DocumentPath == nil || *d.DocumentPath == "" {
		return nil, "", sickness.ErrDocumentMissing
	}

	rc, err := s.files.Open(ctx, *d.DocumentPath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, "", sickness.ErrDocumentMissing
		}
		return nil, "", err
	}
	return rc, documentName(d), nil
}

// MarkViewed implements sickness.SicknessService. The owner is notified on every call.
func (s *SicknessServiceImpl) MarkViewed(ctx context.Context, actor user.Actor, id string) (sickness.DeclarationResponse, error) {
	if !actor.IsAdmin() {
		return sickness.DeclarationResponse{}, user.ErrAdminPrivilegeRequired
	}

	d, err := s.sicknessRepo.GetByID(ctx, id)
	if err != nil {
		return sickness.DeclarationResponse{}, err
	}
	if _, err := s.sicknessRepo.MarkViewed(ctx, d.ID); err != nil {
		return sickness.DeclarationResponse{}, fmt.Errorf("failed to mark declaration viewed: %w", err)
	}
	d.ViewedByAdmin = true

	s.notifyViewed(ctx, actor, d)
	return toResponse(d), nil
}

// ResendEmail implements sickness.SicknessService.
func (s *SicknessServiceImpl) ResendEmail(ctx context.Context, actor user.Actor, id string) (sickness.DeclarationResponse, error) {
	if !actor.IsAdmin() {
		return sickness.DeclarationResponse{}, user.ErrAdminPrivilegeRequired
	}

	d, err := s.sicknessRepo.GetByID(ctx, id)
	if err != nil {
		return sickness.DeclarationResponse{}, err
	}
	if d.DocumentPath == nil || *d.DocumentPath == "" {
		return sickness.DeclarationResponse{}, sickness.ErrDocumentMissing
	}

	data, err := s.files.ReadFile(ctx, *d.DocumentPath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return sickness.DeclarationResponse{}, sickness.ErrDocumentMissing
		}
		return sickness.DeclarationResponse{}, fmt.Errorf("failed to read document: %w", err)
	}

	if err := s.sendDeclaration(ctx, d, data); err != nil {
		return sickness.DeclarationResponse{}, fmt.Errorf("%w: %v", sickness.ErrEmailNotSent, err)
	}
	d.EmailSent = true

	return toResponse(d), nil
}

// UnviewedCount implements sickness.SicknessService.
func (s *SicknessServiceImpl) UnviewedCount(ctx context.Context) (int, error) {
	count, err := s.sicknessRepo.Count(ctx, sickness.Filter{Unviewed: true})
	if err != nil {
		return 0, fmt.Errorf("failed to count unviewed declarations: %w", err)
	}
	return count, nil
}

// sendDeclaration mails the declaration with its PDF to the admins and the owner, then records it.
func (s *SicknessServiceImpl) sendDeclaration(ctx context.Context, d sickness.SicknessDeclaration, document []byte) error {
	to, err := s.notification.AdminRecipients(ctx)
	if err != nil {
		return err
	}
	if d.OwnerEmail != "" && !containsFold(to, d.OwnerEmail) {
		to = append(to, d.OwnerEmail)
	}

	name := documentName(d)
	err = s.email.SendSicknessDeclaration(ctx, to, notificationData(d), email.Attachment{
		Filename:    name,
		ContentType: file.PDFContentType,
		Data:        document,
	})
	if err != nil {
		return err
	}

	if err := s.sicknessRepo.MarkEmailSent(ctx, d.ID); err != nil {
		return fmt.Errorf("failed to record email sent: %w", err)
	}
	return nil
}

func (s *SicknessServiceImpl) notifyViewed(ctx context.Context, actor user.Actor, d sickness.SicknessDeclaration) {
	data := notificationData(d)
	to := d.OwnerEmail
	job := func(ctx context.Context) error {
		if admin, err := s.userRepo.GetByID(ctx, actor.UserID); err == nil {
			data.AdminName = admin.FullName()
		}
		return s.email.SendDeclarationViewed(ctx, to, data)
	}
	if err := s.notification.Queue(context.WithoutCancel(ctx), "sickness.viewed", job); err != nil {
		slog.Warn("Failed to queue notification", "job", "sickness.viewed", "error", err)
	}
}

func notificationData(d sickness.SicknessDeclaration) email.SicknessNotification {
	data := email.SicknessNotification{
		EmployeeName:  d.OwnerName(),
		EmployeeEmail: d.OwnerEmail,
		StartDate:     d.StartDate.Format(validator.DateLayout),
		EndDate:       d.EndDate.Format(validator.DateLayout),
		BusinessDays:  leave.BusinessDays(d.StartDate, d.EndDate),
		DocumentName:  documentName(d),
	}
	if d.Description != nil {
		data.Description = *d.Description
	}
	return data
}

func documentName(d sickness.SicknessDeclaration) string {
	if d.DocumentFilename == nil || *d.DocumentFilename == "" {
		return defaultDocumentName
	}
	return *d.DocumentFilename
}

// cleanDocumentName keeps the base name of an uploaded file, dropping any client path.
func cleanDocumentName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return defaultDocumentName
	}
	return name
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
