package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/pkg/logger"
	"paper-analysis-be/internal/repository/unitofwork"
	"paper-analysis-be/pkg/chunker"
	"paper-analysis-be/pkg/doi"
	"paper-analysis-be/pkg/embedding"
	"paper-analysis-be/pkg/events"
	pkgNats "paper-analysis-be/pkg/nats"
	"paper-analysis-be/pkg/pdfextract"
	"paper-analysis-be/pkg/scan"
	"paper-analysis-be/pkg/sections"
	"paper-analysis-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Pipeline stage names, recorded as processing_steps rows.
const (
	stepStart               = "start"
	stepInitializeParser    = "initialize_parser"
	stepOcrDetection        = "ocr_detection"
	stepOcrExtraction       = "ocr_extraction"
	stepDoiExtraction       = "doi_extraction"
	stepStructureParsing    = "structure_parsing"
	stepTableExtraction     = "table_extraction"
	stepFigureExtraction    = "figure_extraction"
	stepReferenceExtraction = "reference_extraction"
	stepDatabaseStorage     = "database_storage"
	stepVectorIndexing      = "vector_db_indexing"
	stepCompletion          = "completion"
)

// errJobCancelled aborts the pipeline without marking the job failed.
var errJobCancelled = errors.New("job cancelled")

// DocumentParser is the per-file extraction surface the pipeline drives.
// *pdfextract.Extractor satisfies it; tests substitute fakes.
type DocumentParser interface {
	Close() error
	PageCount() int
	RawTextByPage(maxPages int) []string
	ExtractText() string
	ExtractMetadata() pdfextract.Metadata
	InfoFields() map[string]string
	ExtractTables() []pdfextract.Table
	ExtractFigures(outputDir string) []pdfextract.Figure
	ExtractReferences() []pdfextract.Reference
}

// ParserFactory opens one PDF for extraction.
type ParserFactory func(path string) (DocumentParser, error)

func DefaultParserFactory(path string) (DocumentParser, error) {
	return pdfextract.Open(path)
}

// openExtractor is swapped by tests that cannot open a real PDF.
var openExtractor = pdfextract.Open

// NewPdfParserFactory opens PDFs with the configured author-affiliation
// denylist applied to every extractor.
func NewPdfParserFactory(affiliationDenylist []string) ParserFactory {
	if len(affiliationDenylist) == 0 {
		return DefaultParserFactory
	}
	return func(path string) (DocumentParser, error) {
		p, err := openExtractor(path)
		if err != nil {
			return nil, err
		}
		p.AffiliationDenylist = affiliationDenylist
		return p, nil
	}
}

// OcrEngine runs full-document OCR. Nil when no engine is configured.
type OcrEngine interface {
	ExtractWithOCR(ctx context.Context, pdfPath string) (*scan.OCRResult, error)
}

// DoiFinder resolves a validated DOI from free text.
type DoiFinder interface {
	ExtractAndValidate(ctx context.Context, text string, validate bool) *string
}

var _ DoiFinder = (*doi.Validator)(nil)

type ConsumerConfig struct {
	TopicName        string
	FigureDir        string
	ChunkSize        int
	ChunkOverlap     int
	MaxRetries       int
	RetryBackoffBase time.Duration
	HardTimeout      time.Duration
	SoftTimeout      time.Duration
	ValidateDoi      bool
	LockTTL          time.Duration
}

func (c *ConsumerConfig) applyDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = chunker.DefaultChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = chunker.DefaultOverlap
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoffBase <= 0 {
		c.RetryBackoffBase = 60 * time.Second
	}
	if c.HardTimeout <= 0 {
		c.HardTimeout = time.Hour
	}
	if c.SoftTimeout <= 0 {
		c.SoftTimeout = 50 * time.Minute
	}
	if c.LockTTL <= 0 {
		c.LockTTL = c.HardTimeout
	}
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	cfg               ConsumerConfig
	uowFactory        unitofwork.RepositoryFactory
	parserFactory     ParserFactory
	detector          *scan.Detector
	ocr               OcrEngine
	doiFinder         DoiFinder
	embeddingProvider embedding.Provider
	lock              store.LockStore
	eventPublisher    *pkgNats.Publisher
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	cfg ConsumerConfig,
	uowFactory unitofwork.RepositoryFactory,
	parserFactory ParserFactory,
	ocr OcrEngine,
	doiFinder DoiFinder,
	embeddingProvider embedding.Provider,
	lock store.LockStore,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	cfg.applyDefaults()
	if parserFactory == nil {
		parserFactory = DefaultParserFactory
	}
	if lock == nil {
		lock = store.NewLocalLockStore()
	}
	return &consumerService{
		pubSub:            pubSub,
		cfg:               cfg,
		uowFactory:        uowFactory,
		parserFactory:     parserFactory,
		detector:          scan.NewDetector(),
		ocr:               ocr,
		doiFinder:         doiFinder,
		embeddingProvider: embeddingProvider,
		lock:              lock,
		eventPublisher:    eventPublisher,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.cfg.TopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ProcessDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("pipeline", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.ProcessingJobRepository().FindByJobId(ctx, payload.JobId)
	if err != nil {
		cs.log.Error("pipeline", "failed to load job", map[string]interface{}{
			"job_id": payload.JobId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}
	if job == nil {
		cs.log.Warn("pipeline", "job not found, dropping message", map[string]interface{}{
			"job_id": payload.JobId,
		})
		msg.Ack()
		return
	}
	if job.Status.IsTerminal() {
		msg.Ack()
		return
	}

	now := time.Now()
	job.Status = entity.JobStatusProcessing
	job.StartedAt = &now
	if err := uow.ProcessingJobRepository().Update(ctx, job); err != nil {
		msg.Nack()
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, cs.cfg.HardTimeout)
	err = cs.runPipeline(runCtx, job, &payload)
	cancel()

	switch {
	case err == nil:
		msg.Ack()
	case errors.Is(err, errJobCancelled):
		cs.log.Info("pipeline", "job cancelled mid-run", map[string]interface{}{
			"job_id": job.JobId,
		})
		msg.Ack()
	default:
		cs.handleFailure(ctx, job, &payload, err)
		msg.Ack()
	}
}

// handleFailure either schedules a retry with exponential backoff or marks
// the job terminally failed.
func (cs *consumerService) handleFailure(ctx context.Context, job *entity.ProcessingJob, payload *dto.ProcessDocumentMessage, cause error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	current, err := uow.ProcessingJobRepository().FindByJobId(ctx, job.JobId)
	if err != nil || current == nil {
		return
	}

	errMsg := cause.Error()
	if current.RetryCount < cs.cfg.MaxRetries {
		current.RetryCount++
		current.Status = entity.JobStatusPending
		current.ErrorMessage = &errMsg
		if err := uow.ProcessingJobRepository().Update(ctx, current); err != nil {
			cs.log.Error("pipeline", "failed to persist retry state", map[string]interface{}{
				"job_id": job.JobId,
				"error":  err.Error(),
			})
			return
		}

		backoff := cs.cfg.RetryBackoffBase * (1 << (current.RetryCount - 1))
		cs.log.Warn("pipeline", "job failed, scheduling retry", map[string]interface{}{
			"job_id":  job.JobId,
			"attempt": current.RetryCount,
			"backoff": backoff.String(),
			"error":   errMsg,
		})

		raw, _ := json.Marshal(payload)
		go func() {
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
				retry := message.NewMessage(uuid.New().String(), raw)
				if err := cs.pubSub.Publish(cs.cfg.TopicName, retry); err != nil {
					cs.log.Error("pipeline", "failed to republish retry", map[string]interface{}{
						"job_id": job.JobId,
						"error":  err.Error(),
					})
				}
			}
		}()
		return
	}

	now := time.Now()
	current.Status = entity.JobStatusFailed
	current.ErrorMessage = &errMsg
	current.CompletedAt = &now
	if err := uow.ProcessingJobRepository().Update(ctx, current); err != nil {
		cs.log.Error("pipeline", "failed to persist failed state", map[string]interface{}{
			"job_id": job.JobId,
			"error":  err.Error(),
		})
	}

	cs.log.Error("pipeline", "job failed permanently", map[string]interface{}{
		"job_id":  job.JobId,
		"retries": current.RetryCount,
		"error":   errMsg,
	})

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.NewJobFailed(job.JobId, errMsg, current.RetryCount)); err != nil {
			cs.log.Warn("pipeline", "failed to publish JOB_FAILED event", map[string]interface{}{
				"job_id": job.JobId,
				"error":  err.Error(),
			})
		}
	}
}

// recordStep appends one processing_steps row outside any transaction so the
// audit trail survives pipeline failure.
func (cs *consumerService) recordStep(ctx context.Context, jobId, name string, status entity.StepStatus, details map[string]interface{}, durationMs *int64) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	step := &entity.ProcessingStep{
		Id:         uuid.New(),
		JobId:      jobId,
		StepName:   name,
		Status:     status,
		Details:    details,
		DurationMs: durationMs,
		CreatedAt:  time.Now(),
	}
	if err := uow.ProcessingStepRepository().Append(ctx, step); err != nil {
		cs.log.Warn("pipeline", "failed to record step", map[string]interface{}{
			"job_id": jobId,
			"step":   name,
			"error":  err.Error(),
		})
	}
}

// runStep wraps one stage with started/completed/failed rows and timing.
// Panics from parser internals are converted to errors.
func (cs *consumerService) runStep(ctx context.Context, jobId, name string, fn func() (map[string]interface{}, error)) (err error) {
	start := time.Now()
	cs.recordStep(ctx, jobId, name, entity.StepStatusStarted, nil, nil)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
			dur := time.Since(start).Milliseconds()
			cs.recordStep(ctx, jobId, name, entity.StepStatusFailed, map[string]interface{}{
				"error": err.Error(),
			}, &dur)
		}
	}()

	details, err := fn()
	dur := time.Since(start).Milliseconds()
	if err != nil {
		cs.recordStep(ctx, jobId, name, entity.StepStatusFailed, map[string]interface{}{
			"error": err.Error(),
		}, &dur)
		return err
	}
	cs.recordStep(ctx, jobId, name, entity.StepStatusCompleted, details, &dur)
	return nil
}

// checkpoint advances progress (never backwards) and polls for cancellation
// and the soft deadline between stages.
func (cs *consumerService) checkpoint(ctx context.Context, job *entity.ProcessingJob, stepName string, progress int, startedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing deadline exceeded: %w", err)
	}
	if time.Since(startedAt) > cs.cfg.SoftTimeout {
		return fmt.Errorf("soft time limit exceeded at %s", stepName)
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	current, err := uow.ProcessingJobRepository().FindByJobId(ctx, job.JobId)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("job %s disappeared", job.JobId)
	}
	if current.Status == entity.JobStatusCancelled {
		return errJobCancelled
	}

	if progress > current.Progress {
		current.Progress = progress
	}
	current.CurrentStep = &stepName
	if err := uow.ProcessingJobRepository().Update(ctx, current); err != nil {
		return err
	}
	*job = *current
	return nil
}

func (cs *consumerService) runPipeline(ctx context.Context, job *entity.ProcessingJob, payload *dto.ProcessDocumentMessage) error {
	startedAt := time.Now()

	if err := cs.checkpoint(ctx, job, stepStart, 0, startedAt); err != nil {
		return err
	}
	cs.recordStep(ctx, job.JobId, stepStart, entity.StepStatusCompleted, map[string]interface{}{
		"filename": payload.OriginalFilename,
	}, nil)

	// initialize_parser
	var parser DocumentParser
	err := cs.runStep(ctx, job.JobId, stepInitializeParser, func() (map[string]interface{}, error) {
		p, err := cs.parserFactory(payload.FilePath)
		if err != nil {
			return nil, err
		}
		parser = p
		return map[string]interface{}{"page_count": p.PageCount()}, nil
	})
	if err != nil {
		return err
	}
	defer parser.Close()

	if err := cs.checkpoint(ctx, job, stepInitializeParser, 10, startedAt); err != nil {
		return err
	}

	// ocr_detection
	var isScanned bool
	var scanConfidence float64
	err = cs.runStep(ctx, job.JobId, stepOcrDetection, func() (map[string]interface{}, error) {
		sample := parser.RawTextByPage(cs.detector.SamplePages)
		isScanned, scanConfidence = cs.detector.IsScanned(sample)
		return map[string]interface{}{
			"is_scanned": isScanned,
			"confidence": scanConfidence,
		}, nil
	})
	if err != nil {
		return err
	}

	if err := cs.checkpoint(ctx, job, stepOcrDetection, 15, startedAt); err != nil {
		return err
	}

	// ocr_extraction when the detector is confident or the caller forced it.
	// An OCR failure falls back to direct extraction rather than failing the job.
	var fullText string
	ocrApplied := false
	if scan.ShouldApplyOCR(isScanned, scanConfidence, payload.ForceOcr) && cs.ocr != nil {
		ocrErr := cs.runStep(ctx, job.JobId, stepOcrExtraction, func() (map[string]interface{}, error) {
			res, err := cs.ocr.ExtractWithOCR(ctx, payload.FilePath)
			if err != nil {
				return nil, err
			}
			fullText = res.FullText
			ocrApplied = true
			return map[string]interface{}{
				"page_count":         res.PageCount,
				"total_chars":        res.TotalChars,
				"avg_chars_per_page": res.AvgCharsPerPage,
			}, nil
		})
		if ocrErr != nil {
			cs.log.Warn("pipeline", "ocr failed, falling back to direct extraction", map[string]interface{}{
				"job_id": job.JobId,
				"error":  ocrErr.Error(),
			})
		}
	}
	if !ocrApplied {
		fullText = parser.ExtractText()
	}

	// doi_extraction never fails the job
	var docDoi *string
	_ = cs.runStep(ctx, job.JobId, stepDoiExtraction, func() (map[string]interface{}, error) {
		docDoi = doi.FromPDFInfo(parser.InfoFields())
		if docDoi == nil && cs.doiFinder != nil {
			docDoi = cs.doiFinder.ExtractAndValidate(ctx, fullText, cs.cfg.ValidateDoi)
		}
		details := map[string]interface{}{"found": docDoi != nil}
		if docDoi != nil {
			details["doi"] = *docDoi
		}
		return details, nil
	})

	if err := cs.checkpoint(ctx, job, stepDoiExtraction, 25, startedAt); err != nil {
		return err
	}

	// structure_parsing is fatal: a document with no extractable text
	// cannot be processed.
	var meta pdfextract.Metadata
	var secs sections.Sections
	err = cs.runStep(ctx, job.JobId, stepStructureParsing, func() (map[string]interface{}, error) {
		if strings.TrimSpace(fullText) == "" {
			return nil, fmt.Errorf("no extractable text in document")
		}
		meta = parser.ExtractMetadata()
		secs = sections.NewSegmenter(fullText).Extract()
		return map[string]interface{}{
			"sections_found": secs.Count(),
			"has_title":      meta.Title != nil,
			"author_count":   len(meta.Authors),
		}, nil
	})
	if err != nil {
		return err
	}

	if err := cs.checkpoint(ctx, job, stepStructureParsing, 35, startedAt); err != nil {
		return err
	}

	// table/figure/reference extraction are tolerated failures: the document
	// is stored either way, the corresponding flag records the outcome.
	var tables []pdfextract.Table
	tablesOk := cs.runStep(ctx, job.JobId, stepTableExtraction, func() (map[string]interface{}, error) {
		tables = parser.ExtractTables()
		return map[string]interface{}{"table_count": len(tables)}, nil
	}) == nil

	if err := cs.checkpoint(ctx, job, stepTableExtraction, 50, startedAt); err != nil {
		return err
	}

	var figures []pdfextract.Figure
	figuresOk := cs.runStep(ctx, job.JobId, stepFigureExtraction, func() (map[string]interface{}, error) {
		figures = parser.ExtractFigures(cs.cfg.FigureDir)
		return map[string]interface{}{"figure_count": len(figures)}, nil
	}) == nil

	if err := cs.checkpoint(ctx, job, stepFigureExtraction, 60, startedAt); err != nil {
		return err
	}

	var references []pdfextract.Reference
	referencesOk := cs.runStep(ctx, job.JobId, stepReferenceExtraction, func() (map[string]interface{}, error) {
		references = parser.ExtractReferences()
		return map[string]interface{}{"reference_count": len(references)}, nil
	}) == nil

	if err := cs.checkpoint(ctx, job, stepReferenceExtraction, 70, startedAt); err != nil {
		return err
	}

	// Concurrent runs against the same document serialize on this lock.
	// When the lock backend is down we degrade to last writer wins.
	var lockKey string
	if payload.DocumentId != nil {
		lockKey = fmt.Sprintf("reprocess:%s", payload.DocumentId)
		acquired, lockErr := cs.lock.Acquire(ctx, lockKey, cs.cfg.LockTTL)
		if lockErr != nil {
			cs.log.Warn("pipeline", "lock backend unavailable, proceeding without lock", map[string]interface{}{
				"job_id": job.JobId,
				"error":  lockErr.Error(),
			})
			lockKey = ""
		} else if !acquired {
			return fmt.Errorf("document %s is being processed by another job", payload.DocumentId)
		}
	}
	if lockKey != "" {
		defer cs.lock.Release(context.Background(), lockKey)
	}

	// database_storage is fatal
	var document *entity.Document
	err = cs.runStep(ctx, job.JobId, stepDatabaseStorage, func() (map[string]interface{}, error) {
		doc, err := cs.storeDocument(ctx, job, payload, &meta, secs, fullText, docDoi, parser.PageCount(),
			tables, figures, references, tablesOk, figuresOk, referencesOk, ocrApplied)
		if err != nil {
			return nil, err
		}
		document = doc
		return map[string]interface{}{"document_id": doc.Id.String()}, nil
	})
	if err != nil {
		return err
	}

	if err := cs.checkpoint(ctx, job, stepDatabaseStorage, 80, startedAt); err != nil {
		return err
	}

	// vector_db_indexing failure is tolerated: the document stays usable,
	// search just will not see it until reprocess.
	chunkCount := 0
	indexErr := cs.runStep(ctx, job.JobId, stepVectorIndexing, func() (map[string]interface{}, error) {
		n, err := cs.indexDocument(ctx, document, secs, fullText)
		if err != nil {
			return nil, err
		}
		chunkCount = n
		return map[string]interface{}{"chunk_count": n}, nil
	})
	if indexErr != nil {
		cs.log.Warn("pipeline", "vector indexing failed, document stored without chunks", map[string]interface{}{
			"job_id":      job.JobId,
			"document_id": document.Id.String(),
			"error":       indexErr.Error(),
		})
	}

	if err := cs.checkpoint(ctx, job, stepVectorIndexing, 90, startedAt); err != nil {
		return err
	}

	// completion
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	current, err := uow.ProcessingJobRepository().FindByJobId(ctx, job.JobId)
	if err != nil || current == nil {
		return fmt.Errorf("failed to finalize job %s: %v", job.JobId, err)
	}
	if current.Status == entity.JobStatusCancelled {
		return errJobCancelled
	}

	now := time.Now()
	stepName := stepCompletion
	current.Status = entity.JobStatusCompleted
	current.Progress = 100
	current.CurrentStep = &stepName
	current.CompletedAt = &now
	current.DocumentId = &document.Id
	if err := uow.ProcessingJobRepository().Update(ctx, current); err != nil {
		return err
	}
	cs.recordStep(ctx, job.JobId, stepCompletion, entity.StepStatusCompleted, map[string]interface{}{
		"document_id": document.Id.String(),
		"chunk_count": chunkCount,
	}, nil)

	cs.log.Info("pipeline", "document processed", map[string]interface{}{
		"job_id":      job.JobId,
		"document_id": document.Id.String(),
		"chunk_count": chunkCount,
	})

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, events.NewDocumentProcessed(job.JobId, document.Id.String(), chunkCount)); err != nil {
			cs.log.Warn("pipeline", "failed to publish DOCUMENT_PROCESSED event", map[string]interface{}{
				"job_id": job.JobId,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

func (cs *consumerService) storeDocument(
	ctx context.Context,
	job *entity.ProcessingJob,
	payload *dto.ProcessDocumentMessage,
	meta *pdfextract.Metadata,
	secs sections.Sections,
	fullText string,
	docDoi *string,
	pageCount int,
	tables []pdfextract.Table,
	figures []pdfextract.Figure,
	references []pdfextract.Reference,
	tablesOk, figuresOk, referencesOk, ocrApplied bool,
) (*entity.Document, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	var fileSize int64
	if v, ok := job.JobMetadata["file_size"]; ok {
		switch n := v.(type) {
		case float64:
			fileSize = int64(n)
		case int64:
			fileSize = n
		}
	}

	doc := &entity.Document{
		Id:                  uuid.New(),
		Filename:            payload.OriginalFilename,
		FilePath:            payload.FilePath,
		FileSize:            fileSize,
		PageCount:           pageCount,
		Title:               meta.Title,
		Authors:             meta.Authors,
		Doi:                 docDoi,
		Abstract:            secs.Abstract,
		Introduction:        secs.Introduction,
		Methodology:         secs.Methodology,
		Results:             secs.Results,
		Conclusion:          secs.Conclusion,
		ReferencesText:      secs.References,
		FullText:            fullText,
		Tables:              tables,
		Figures:             figures,
		References:          references,
		TablesExtracted:     tablesOk && len(tables) > 0,
		FiguresExtracted:    figuresOk && len(figures) > 0,
		ReferencesExtracted: referencesOk && len(references) > 0,
		OcrApplied:          ocrApplied,
		UserId:              payload.UserId,
		CreatedAt:           time.Now(),
	}

	// A reprocess run replaces the existing row in place, keeping the id
	// stable for chunks and clients.
	if payload.DocumentId != nil {
		existing, err := uow.DocumentRepository().FindById(ctx, *payload.DocumentId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			now := time.Now()
			doc.Id = existing.Id
			doc.CreatedAt = existing.CreatedAt
			doc.UpdatedAt = &now
			if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
				return nil, err
			}
			return doc, nil
		}
	}

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// indexDocument chunks the text, embeds every chunk, and atomically replaces
// the document's chunks.
func (cs *consumerService) indexDocument(ctx context.Context, doc *entity.Document, secs sections.Sections, fullText string) (int, error) {
	ck := chunker.New(cs.cfg.ChunkSize, cs.cfg.ChunkOverlap)
	chunks := ck.ChunkDocument(fullText, secs.Ordered())
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := cs.embeddingProvider.GenerateBatch(ctx, texts)
	if err != nil {
		return 0, err
	}

	newChunks := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		newChunks[i] = &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: c.Index,
			Text:       c.Text,
			Section:    c.Section,
			ChunkType:  c.ChunkType,
			PageNumber: c.PageNumber,
			Embedding:  vectors[i],
			CreatedAt:  time.Now(),
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return 0, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return len(newChunks), nil
}
