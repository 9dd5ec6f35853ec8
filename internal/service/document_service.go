package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/internal/repository/specification"
	"paper-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileType = errors.New("only PDF files are accepted")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
)

// UploadFile is one file of an upload request, already open for reading.
type UploadFile struct {
	Filename string
	Content  io.Reader
	Size     int64
	ForceOcr bool
}

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, file UploadFile) (*dto.UploadDocumentResponse, error)
	UploadBatch(ctx context.Context, userId uuid.UUID, files []UploadFile) (*dto.BatchUploadResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.ListDocumentsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ReprocessDocumentRequest) (*dto.ReprocessDocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	uploadDir        string
	maxFileSize      int64
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	uploadDir string,
	maxFileSize int64,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		uploadDir:        uploadDir,
		maxFileSize:      maxFileSize,
		log:              log,
	}
}

// newJobId returns an identifier of the form job_<16 hex chars>.
func newJobId() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "job_" + hex.EncodeToString(b)
}

func newBatchId() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "batch_" + hex.EncodeToString(b)
}

func (s *documentService) validate(file UploadFile) error {
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return ErrInvalidFileType
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// saveFile writes the upload under a collision-free name and returns the path.
func (s *documentService) saveFile(file UploadFile) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	path := filepath.Join(s.uploadDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file.Content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (s *documentService) enqueue(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, file UploadFile, filePath string, batchId *string, documentId *uuid.UUID) (*entity.ProcessingJob, error) {
	job := &entity.ProcessingJob{
		Id:         uuid.New(),
		JobId:      newJobId(),
		BatchId:    batchId,
		DocumentId: documentId,
		Filename:   file.Filename,
		Status:     entity.JobStatusPending,
		Progress:   0,
		UserId:     userId,
		JobMetadata: map[string]interface{}{
			"file_path": filePath,
			"file_size": file.Size,
			"force_ocr": file.ForceOcr,
		},
		CreatedAt: time.Now(),
	}
	if err := uow.ProcessingJobRepository().Create(ctx, job); err != nil {
		return nil, err
	}

	payload := dto.ProcessDocumentMessage{
		JobId:            job.JobId,
		FilePath:         filePath,
		OriginalFilename: file.Filename,
		UserId:           userId,
		DocumentId:       documentId,
		ForceOcr:         file.ForceOcr,
	}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, file UploadFile) (*dto.UploadDocumentResponse, error) {
	if err := s.validate(file); err != nil {
		return nil, err
	}

	filePath, err := s.saveFile(file)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := s.enqueue(ctx, uow, userId, file, filePath, nil, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("document", "upload accepted", map[string]interface{}{
		"job_id":   job.JobId,
		"filename": file.Filename,
	})

	return &dto.UploadDocumentResponse{
		JobId:    job.JobId,
		Filename: file.Filename,
		Status:   string(job.Status),
	}, nil
}

// UploadBatch accepts the whole batch or none of it: validation failures
// reject the request before any file is stored.
func (s *documentService) UploadBatch(ctx context.Context, userId uuid.UUID, files []UploadFile) (*dto.BatchUploadResponse, error) {
	for _, f := range files {
		if err := s.validate(f); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Filename, err)
		}
	}

	batchId := newBatchId()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	res := &dto.BatchUploadResponse{BatchId: batchId}
	for _, f := range files {
		filePath, err := s.saveFile(f)
		if err != nil {
			return nil, err
		}
		job, err := s.enqueue(ctx, uow, userId, f, filePath, &batchId, nil)
		if err != nil {
			return nil, err
		}
		res.Jobs = append(res.Jobs, dto.UploadDocumentResponse{
			JobId:    job.JobId,
			Filename: f.Filename,
			Status:   string(job.Status),
		})
	}

	s.log.Info("document", "batch upload accepted", map[string]interface{}{
		"batch_id": batchId,
		"jobs":     len(res.Jobs),
	})
	return res, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentListItem, len(docs)),
		Count:     len(docs),
	}
	for i, d := range docs {
		res.Documents[i] = dto.DocumentListItem{
			Id:        d.Id,
			Filename:  d.Filename,
			Title:     d.Title,
			Authors:   d.Authors,
			Doi:       d.Doi,
			PageCount: d.PageCount,
			FileSize:  d.FileSize,
			CreatedAt: d.CreatedAt,
		}
	}
	return res, nil
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	return &dto.ShowDocumentResponse{
		Id:                  doc.Id,
		Filename:            doc.Filename,
		PageCount:           doc.PageCount,
		FileSize:            doc.FileSize,
		Title:               doc.Title,
		Authors:             doc.Authors,
		Doi:                 doc.Doi,
		Abstract:            doc.Abstract,
		Introduction:        doc.Introduction,
		Methodology:         doc.Methodology,
		Results:             doc.Results,
		Conclusion:          doc.Conclusion,
		ReferencesText:      doc.ReferencesText,
		Tables:              doc.Tables,
		Figures:             doc.Figures,
		References:          doc.References,
		TablesExtracted:     doc.TablesExtracted,
		FiguresExtracted:    doc.FiguresExtracted,
		ReferencesExtracted: doc.ReferencesExtracted,
		OcrApplied:          doc.OcrApplied,
		CreatedAt:           doc.CreatedAt,
		UpdatedAt:           doc.UpdatedAt,
	}, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// stored file removal is best effort
	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("document", "failed to remove stored file", map[string]interface{}{
				"path":  doc.FilePath,
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (s *documentService) Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.ReprocessDocumentRequest) (*dto.ReprocessDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	file := UploadFile{
		Filename: doc.Filename,
		Size:     doc.FileSize,
		ForceOcr: req != nil && req.ForceOcr,
	}
	job, err := s.enqueue(ctx, uow, userId, file, doc.FilePath, nil, &doc.Id)
	if err != nil {
		return nil, err
	}

	s.log.Info("document", "reprocess accepted", map[string]interface{}{
		"job_id":      job.JobId,
		"document_id": doc.Id,
	})

	return &dto.ReprocessDocumentResponse{
		JobId:      job.JobId,
		DocumentId: doc.Id,
		Status:     string(job.Status),
	}, nil
}
