package service

import (
	"context"
	"testing"
	"time"

	"paper-analysis-be/internal/dto"
	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	store *memory.Store
	emb   *fakeEmbedder
	svc   ISearchService
	owner uuid.UUID
	docId uuid.UUID
}

// newSearchFixture seeds one document with three chunks whose embeddings
// have a known similarity order against the query vector (1,0,0,0).
func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()

	st := memory.NewStore()
	emb := newFakeEmbedder(4)
	owner := uuid.New()
	docId := uuid.New()

	require.NoError(t, st.Documents.Create(context.Background(), &entity.Document{
		Id:        docId,
		Filename:  "paper.pdf",
		Title:     strPtr("Attention Mechanisms"),
		UserId:    owner,
		CreatedAt: time.Now(),
	}))

	chunks := []*entity.DocumentChunk{
		{
			Id: uuid.New(), DocumentId: docId, ChunkIndex: 0,
			Text: "the abstract chunk", Section: "abstract", ChunkType: "text",
			Embedding: []float32{1, 0, 0, 0}, CreatedAt: time.Now(),
		},
		{
			Id: uuid.New(), DocumentId: docId, ChunkIndex: 1,
			Text: "the methods chunk", Section: "methodology", ChunkType: "text",
			Embedding: []float32{1, 1, 0, 0}, CreatedAt: time.Now(),
		},
		{
			Id: uuid.New(), DocumentId: docId, ChunkIndex: 2,
			Text: "the results chunk", Section: "results", ChunkType: "text",
			Embedding: []float32{0, 1, 0, 0}, CreatedAt: time.Now(),
		},
	}
	require.NoError(t, st.Chunks.CreateBulk(context.Background(), chunks))

	emb.vectors["attention"] = []float32{1, 0, 0, 0}

	return &searchFixture{
		store: st,
		emb:   emb,
		svc:   NewSearchService(memory.NewFactory(st), emb, nopLogger{}),
		owner: owner,
		docId: docId,
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	f := newSearchFixture(t)

	res, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention"})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)

	// cos(q, e0)=1, cos(q, e1)=1/sqrt2, cos(q, e2)=0
	assert.Equal(t, "the abstract chunk", res.Results[0].Text)
	assert.Equal(t, "the methods chunk", res.Results[1].Text)
	assert.Equal(t, "the results chunk", res.Results[2].Text)
	assert.InDelta(t, 1.0, res.Results[0].Similarity, 1e-9)
	assert.InDelta(t, 0.7071, res.Results[1].Similarity, 1e-3)
	assert.InDelta(t, 0.0, res.Results[2].Similarity, 1e-9)

	assert.Equal(t, f.docId, res.Results[0].DocumentId)
	assert.Equal(t, strPtr("Attention Mechanisms"), res.Results[0].DocumentTitle)
	assert.Equal(t, "paper.pdf", res.Results[0].Filename)
}

func TestSearchTopKClamped(t *testing.T) {
	f := newSearchFixture(t)

	res, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention", TopK: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	// Over-limit requests fall back to the cap, zero to the default.
	res, err = f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention", TopK: 500})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention", TopK: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestSearchSectionFilter(t *testing.T) {
	f := newSearchFixture(t)

	section := "methodology"
	res, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{
		Query:   "attention",
		Section: &section,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "the methods chunk", res.Results[0].Text)
	assert.Equal(t, "methodology", res.Results[0].Section)
}

func TestSearchDocumentFilter(t *testing.T) {
	f := newSearchFixture(t)

	otherDoc := uuid.New()
	require.NoError(t, f.store.Documents.Create(context.Background(), &entity.Document{
		Id: otherDoc, Filename: "other.pdf", UserId: f.owner, CreatedAt: time.Now(),
	}))
	require.NoError(t, f.store.Chunks.CreateBulk(context.Background(), []*entity.DocumentChunk{
		{
			Id: uuid.New(), DocumentId: otherDoc, ChunkIndex: 0,
			Text: "unrelated chunk", Embedding: []float32{1, 0, 0, 0}, CreatedAt: time.Now(),
		},
	}))

	res, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{
		Query:      "attention",
		DocumentId: &f.docId,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)
	for _, r := range res.Results {
		assert.Equal(t, f.docId, r.DocumentId)
	}
}

func TestSearchScopedToUser(t *testing.T) {
	f := newSearchFixture(t)

	res, err := f.svc.Search(context.Background(), uuid.New(), &dto.SearchRequest{Query: "attention"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Results)
}

func TestSearchLogsQuery(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention"})
	require.NoError(t, err)

	logged, err := f.store.Queries.ListByUser(context.Background(), f.owner, 10)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, "attention", logged[0].QueryText)
	assert.Equal(t, 3, logged[0].ResultsCount)
	require.NotNil(t, logged[0].TopScore)
	assert.InDelta(t, 1.0, *logged[0].TopScore, 1e-9)
	assert.Equal(t, []float32{1, 0, 0, 0}, logged[0].QueryEmbedding)
}

func TestSearchEmbeddingFailure(t *testing.T) {
	f := newSearchFixture(t)
	f.emb.err = assert.AnError

	_, err := f.svc.Search(context.Background(), f.owner, &dto.SearchRequest{Query: "attention"})
	require.ErrorIs(t, err, assert.AnError)

	logged, lerr := f.store.Queries.ListByUser(context.Background(), f.owner, 10)
	require.NoError(t, lerr)
	assert.Empty(t, logged)
}
