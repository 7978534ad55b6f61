// Package testutil содержит фейковые реализации хранилища и реестра для тестов.
package testutil

import (
	"context"
	"io"
	"sort"

	"dataroom-service/internal/MinIO"
	"dataroom-service/internal/model/document"
	"dataroom-service/internal/model/profile"
	"dataroom-service/internal/repository/documentRepo"

	"github.com/google/uuid"
)

// FakeObjectStore — объектное хранилище в памяти.
type FakeObjectStore struct {
	Objects   map[string][]byte
	UploadErr error
	DeleteErr error
}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{Objects: map[string][]byte{}}
}

func (f *FakeObjectStore) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, _ string) (MinIO.UploadResult, error) {
	if f.UploadErr != nil {
		return MinIO.UploadResult{}, f.UploadErr
	}
	data, _ := io.ReadAll(reader)
	f.Objects[key] = data
	return MinIO.UploadResult{Key: key, Size: int64(len(data))}, nil
}

func (f *FakeObjectStore) DeleteFile(_ context.Context, key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.Objects, key)
	return nil
}

// FakeRegistry — документы и профили в памяти, счётчики ведутся так же,
// как их ведут транзакции documentRepo.
type FakeRegistry struct {
	Docs      map[uuid.UUID]*document.Document
	Profiles  map[string]*profile.UserProfile
	CreateErr error
	DeleteErr error
}

func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		Docs:     map[uuid.UUID]*document.Document{},
		Profiles: map[string]*profile.UserProfile{},
	}
}

func (f *FakeRegistry) CreateWithStats(_ context.Context, doc *document.Document) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Docs[doc.ID] = doc
	if p, ok := f.Profiles[doc.Owner]; ok {
		p.TotalDocuments++
		p.StorageUsed += doc.Size
	}
	return nil
}

func (f *FakeRegistry) GetByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	return f.Docs[id], nil
}

func (f *FakeRegistry) ListByOwner(_ context.Context, owner string) ([]*document.Document, error) {
	var out []*document.Document
	for _, d := range f.Docs {
		if d.Owner == owner {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *FakeRegistry) DeleteWithStats(_ context.Context, id uuid.UUID, owner string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	d, ok := f.Docs[id]
	if !ok || d.Owner != owner {
		return documentRepo.ErrNotFound
	}
	delete(f.Docs, id)
	if p, ok := f.Profiles[owner]; ok {
		p.TotalDocuments--
		p.StorageUsed -= d.Size
	}
	return nil
}

func (f *FakeRegistry) GetOrCreate(_ context.Context, owner, email string) (*profile.UserProfile, error) {
	if p, ok := f.Profiles[owner]; ok {
		return p, nil
	}
	p := &profile.UserProfile{ID: uuid.New(), Owner: owner, Email: email}
	f.Profiles[owner] = p
	return p, nil
}
