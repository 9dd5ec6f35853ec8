package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"paper-analysis-be/internal/entity"
	"paper-analysis-be/internal/repository/contract"
	"paper-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

// DocumentRepository is an in-memory contract.DocumentRepository used by
// tests and local tooling. It interprets the common specifications the
// GORM implementation supports.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*entity.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs: make(map[uuid.UUID]*entity.Document),
	}
}

var _ contract.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if document.Id == uuid.Nil {
		document.Id = uuid.New()
	}
	if document.CreatedAt.IsZero() {
		document.CreatedAt = time.Now()
	}
	cp := *document
	r.docs[document.Id] = &cp
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *document
	r.docs[document.Id] = &cp
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.docs, id)
	return nil
}

func (r *DocumentRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	return &cp, nil
}

func (r *DocumentRepository) matches(doc *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if doc.Id != s.ID {
				return false
			}
		case specification.OwnedByUser:
			if doc.UserId != s.UserID {
				return false
			}
		case specification.ByDoi:
			if doc.Doi == nil || *doc.Doi != s.Doi {
				return false
			}
		}
	}
	return true
}

func (r *DocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Document
	for _, doc := range r.docs {
		if r.matches(doc, specs) {
			cp := *doc
			out = append(out, &cp)
		}
	}
	desc := false
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok {
			desc = s.Desc
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}
