package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentFixture(t *testing.T) (*memory.Store, *fakePublisher, IDocumentService) {
	t.Helper()
	st := memory.NewStore()
	pub := &fakePublisher{}
	svc := NewDocumentService(memory.NewFactory(st), pub, t.TempDir(), 1<<20, nopLogger{})
	return st, pub, svc
}

func pdfUpload(name, content string) UploadFile {
	return UploadFile{
		Filename: name,
		Content:  strings.NewReader(content),
		Size:     int64(len(content)),
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	_, pub, svc := newDocumentFixture(t)

	_, err := svc.Upload(context.Background(), uuid.New(), pdfUpload("notes.txt", "hello"))
	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, pub.published())
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	st := memory.NewStore()
	pub := &fakePublisher{}
	svc := NewDocumentService(memory.NewFactory(st), pub, t.TempDir(), 10, nopLogger{})

	_, err := svc.Upload(context.Background(), uuid.New(), pdfUpload("big.pdf", "this is more than ten bytes"))
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, pub.published())
}

func TestUploadCreatesJobAndPublishes(t *testing.T) {
	st, pub, svc := newDocumentFixture(t)
	userId := uuid.New()

	res, err := svc.Upload(context.Background(), userId, pdfUpload("paper.pdf", "%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.JobId, "job_"))
	assert.Len(t, res.JobId, len("job_")+16)
	assert.Equal(t, "paper.pdf", res.Filename)
	assert.Equal(t, string(entity.JobStatusPending), res.Status)

	job, err := st.Jobs.FindByJobId(context.Background(), res.JobId)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, userId, job.UserId)
	assert.Nil(t, job.BatchId)
	assert.Equal(t, false, job.JobMetadata["force_ocr"])

	filePath, _ := job.JobMetadata["file_path"].(string)
	require.NotEmpty(t, filePath)
	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))

	msgs := pub.published()
	require.Len(t, msgs, 1)
	var payload dto.ProcessDocumentMessage
	require.NoError(t, json.Unmarshal(msgs[0], &payload))
	assert.Equal(t, res.JobId, payload.JobId)
	assert.Equal(t, "paper.pdf", payload.OriginalFilename)
	assert.Equal(t, filePath, payload.FilePath)
	assert.Equal(t, userId, payload.UserId)
	assert.Nil(t, payload.DocumentId)
}

func TestUploadBatchAllOrNone(t *testing.T) {
	st, pub, svc := newDocumentFixture(t)

	_, err := svc.UploadBatch(context.Background(), uuid.New(), []UploadFile{
		pdfUpload("one.pdf", "a"),
		pdfUpload("two.docx", "b"),
	})
	require.ErrorIs(t, err, ErrInvalidFileType)
	assert.Contains(t, err.Error(), "two.docx")

	jobs, err := st.Jobs.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Empty(t, pub.published())
}

func TestUploadBatchSharesBatchId(t *testing.T) {
	st, pub, svc := newDocumentFixture(t)
	userId := uuid.New()

	res, err := svc.UploadBatch(context.Background(), userId, []UploadFile{
		pdfUpload("one.pdf", "a"),
		pdfUpload("two.pdf", "b"),
		pdfUpload("three.pdf", "c"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.BatchId, "batch_"))
	require.Len(t, res.Jobs, 3)
	assert.Len(t, pub.published(), 3)

	for _, j := range res.Jobs {
		job, err := st.Jobs.FindByJobId(context.Background(), j.JobId)
		require.NoError(t, err)
		require.NotNil(t, job)
		require.NotNil(t, job.BatchId)
		assert.Equal(t, res.BatchId, *job.BatchId)
	}
}

func TestListReturnsOwnDocumentsNewestFirst(t *testing.T) {
	st, _, svc := newDocumentFixture(t)
	userId := uuid.New()
	otherId := uuid.New()

	older := &entity.Document{
		Id: uuid.New(), Filename: "older.pdf", UserId: userId,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	newer := &entity.Document{
		Id: uuid.New(), Filename: "newer.pdf", UserId: userId,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	foreign := &entity.Document{
		Id: uuid.New(), Filename: "foreign.pdf", UserId: otherId,
		CreatedAt: time.Now(),
	}
	for _, d := range []*entity.Document{older, newer, foreign} {
		require.NoError(t, st.Documents.Create(context.Background(), d))
	}

	res, err := svc.List(context.Background(), userId)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, "newer.pdf", res.Documents[0].Filename)
	assert.Equal(t, "older.pdf", res.Documents[1].Filename)
}

func TestShowEnforcesOwnership(t *testing.T) {
	st, _, svc := newDocumentFixture(t)
	ownerId := uuid.New()

	doc := &entity.Document{
		Id: uuid.New(), Filename: "paper.pdf", UserId: ownerId,
		Title: strPtr("A Paper"), CreatedAt: time.Now(),
	}
	require.NoError(t, st.Documents.Create(context.Background(), doc))

	res, err := svc.Show(context.Background(), ownerId, doc.Id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, strPtr("A Paper"), res.Title)

	res, err = svc.Show(context.Background(), uuid.New(), doc.Id)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDeleteRemovesDocumentChunksAndFile(t *testing.T) {
	st, _, svc := newDocumentFixture(t)
	userId := uuid.New()

	dir := t.TempDir()
	path := filepath.Join(dir, "stored.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf bytes"), 0o644))

	doc := &entity.Document{
		Id: uuid.New(), Filename: "stored.pdf", FilePath: path,
		UserId: userId, CreatedAt: time.Now(),
	}
	require.NoError(t, st.Documents.Create(context.Background(), doc))
	require.NoError(t, st.Chunks.CreateBulk(context.Background(), []*entity.DocumentChunk{
		{Id: uuid.New(), DocumentId: doc.Id, ChunkIndex: 0, Text: "chunk", CreatedAt: time.Now()},
	}))

	require.NoError(t, svc.Delete(context.Background(), userId, doc.Id))

	got, err := st.Documents.FindById(context.Background(), doc.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := st.Chunks.CountByDocumentId(context.Background(), doc.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteIgnoresForeignDocument(t *testing.T) {
	st, _, svc := newDocumentFixture(t)
	ownerId := uuid.New()

	doc := &entity.Document{
		Id: uuid.New(), Filename: "paper.pdf", UserId: ownerId, CreatedAt: time.Now(),
	}
	require.NoError(t, st.Documents.Create(context.Background(), doc))

	require.NoError(t, svc.Delete(context.Background(), uuid.New(), doc.Id))

	got, err := st.Documents.FindById(context.Background(), doc.Id)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestReprocessPublishesWithDocumentId(t *testing.T) {
	st, pub, svc := newDocumentFixture(t)
	userId := uuid.New()

	doc := &entity.Document{
		Id: uuid.New(), Filename: "paper.pdf", FilePath: "/tmp/stored/paper.pdf",
		FileSize: 512, UserId: userId, CreatedAt: time.Now(),
	}
	require.NoError(t, st.Documents.Create(context.Background(), doc))

	res, err := svc.Reprocess(context.Background(), userId, doc.Id, &dto.ReprocessDocumentRequest{ForceOcr: true})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, doc.Id, res.DocumentId)

	job, err := st.Jobs.FindByJobId(context.Background(), res.JobId)
	require.NoError(t, err)
	require.NotNil(t, job)
	require.NotNil(t, job.DocumentId)
	assert.Equal(t, doc.Id, *job.DocumentId)
	assert.Equal(t, true, job.JobMetadata["force_ocr"])

	msgs := pub.published()
	require.Len(t, msgs, 1)
	var payload dto.ProcessDocumentMessage
	require.NoError(t, json.Unmarshal(msgs[0], &payload))
	require.NotNil(t, payload.DocumentId)
	assert.Equal(t, doc.Id, *payload.DocumentId)
	assert.True(t, payload.ForceOcr)
	assert.Equal(t, "/tmp/stored/paper.pdf", payload.FilePath)
}

func TestReprocessUnknownDocument(t *testing.T) {
	_, pub, svc := newDocumentFixture(t)

	res, err := svc.Reprocess(context.Background(), uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, pub.published())
}
