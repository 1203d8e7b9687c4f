package worktypes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innoventory/innoventory/internal/platform/httpx"
)

type memoryRepo struct {
	nextID int64
	types  map[int64]*WorkType
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, types: make(map[int64]*WorkType)}
}

func (m *memoryRepo) List(_ context.Context, req ListWorkTypesRequest) ([]WorkType, error) {
	var out []WorkType
	for _, wt := range m.types {
		if req.ParentID != nil && (wt.ParentID == nil || *wt.ParentID != *req.ParentID) {
			continue
		}
		out = append(out, *wt)
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*WorkType, error) {
	wt, ok := m.types[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *wt
	return &cp, nil
}

func (m *memoryRepo) Create(_ context.Context, wt WorkType) (int64, error) {
	id := m.nextID
	m.nextID++
	wt.ID = id
	wt.CreatedAt = time.Now()
	wt.UpdatedAt = wt.CreatedAt
	m.types[id] = &wt
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, updates map[string]any) error {
	wt, ok := m.types[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		wt.Name = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		wt.IsActive = v.(bool)
	}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.types[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.types, id)
	return nil
}

func (m *memoryRepo) CountChildren(_ context.Context, id int64) (int, error) {
	count := 0
	for _, wt := range m.types {
		if wt.ParentID != nil && *wt.ParentID == id {
			count++
		}
	}
	return count, nil
}

func TestCreateSubType(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Trademark"}, nil)
	require.NoError(t, err)

	child, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Trademark Renewal", ParentID: &parent.ID}, nil)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

func TestCreateRejectsThirdLevel(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Patent"}, nil)
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Patent Filing", ParentID: &parent.ID}, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateWorkTypeRequest{Name: "Too Deep", ParentID: &child.ID}, nil)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateRejectsMissingParent(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	missing := int64(999)

	_, err := svc.Create(context.Background(), CreateWorkTypeRequest{Name: "Orphan", ParentID: &missing}, nil)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestDeleteParentWithChildrenConflicts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Copyright"}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateWorkTypeRequest{Name: "Copyright Registration", ParentID: &parent.ID}, nil)
	require.NoError(t, err)

	err = svc.Delete(ctx, parent.ID, nil)
	assert.True(t, errors.Is(err, httpx.ErrConflict))

	// Still present after the refused delete.
	_, err = svc.Get(ctx, parent.ID)
	assert.NoError(t, err)
}

func TestDeleteLeaf(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	wt, err := svc.Create(ctx, CreateWorkTypeRequest{Name: "Design"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, wt.ID, nil))
	_, err = svc.Get(ctx, wt.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
