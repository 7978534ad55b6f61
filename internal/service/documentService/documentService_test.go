package documentService_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dataroom-service/internal/model/document"
	"dataroom-service/internal/repository/documentRepo"
	"dataroom-service/internal/service/documentService"
	"dataroom-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setup() (*documentService.DocumentService, *testutil.FakeRegistry, *testutil.FakeObjectStore) {
	reg := testutil.NewFakeRegistry()
	store := testutil.NewFakeObjectStore()
	svc := documentService.New(reg, reg, store, 10, 10*1024*1024)
	return svc, reg, store
}

func TestDeriveName(t *testing.T) {
	assert.Equal(t, "report.pdf", documentService.DeriveName("documents/report.pdf"))
	assert.Equal(t, "report.pdf", documentService.DeriveName("documents/owner-1/report.pdf"))
	assert.Equal(t, "Unknown", documentService.DeriveName(""))
	assert.Equal(t, "Unknown", documentService.DeriveName("documents/"))
}

func TestDeriveType(t *testing.T) {
	assert.Equal(t, "PDF", documentService.DeriveType("report.pdf"))
	assert.Equal(t, "DOCX", documentService.DeriveType("contract.docx"))
	assert.Equal(t, "UNKNOWN", documentService.DeriveType("Unknown"))
	assert.Equal(t, "UNKNOWN", documentService.DeriveType("noextension"))
}

func TestValidateFile(t *testing.T) {
	svc, _, _ := setup()

	assert.NoError(t, svc.ValidateFile("report.pdf", 100))
	assert.NoError(t, svc.ValidateFile("IMAGE.PNG", 100)) // регистр расширения не важен

	err := svc.ValidateFile("malware.exe", 100)
	assert.ErrorIs(t, err, documentService.ErrTypeNotAllowed)

	err = svc.ValidateFile("big.pdf", 11*1024*1024)
	assert.ErrorIs(t, err, documentService.ErrFileTooLarge)

	err = svc.ValidateFile("", 100)
	assert.ErrorIs(t, err, documentService.ErrEmptyFilename)
}

func TestUpload_CreatesDocumentAndUpdatesProfile(t *testing.T) {
	svc, reg, store := setup()
	ctx := context.Background()

	content := []byte("hello pdf")
	doc, err := svc.Upload(ctx, "owner-1", "a@b.io", "report.pdf", "application/pdf", bytes.NewReader(content), int64(len(content)))
	assert.NoError(t, err)
	assert.Equal(t, "report.pdf", doc.Name)
	assert.Equal(t, "PDF", doc.Type)
	assert.Equal(t, "documents/owner-1/report.pdf", doc.Key)
	assert.Equal(t, int64(len(content)), doc.Size)
	assert.Equal(t, document.StatusUploaded, doc.Status)
	assert.Equal(t, "owner-1", doc.Owner)

	// объект лежит в хранилище
	assert.Contains(t, store.Objects, doc.Key)

	// профиль создан и счётчики сошлись
	p := reg.Profiles["owner-1"]
	assert.NotNil(t, p)
	assert.Equal(t, int64(1), p.TotalDocuments)
	assert.Equal(t, int64(len(content)), p.StorageUsed)
}

func TestUpload_SequentialUploadsAccumulateCounters(t *testing.T) {
	svc, reg, _ := setup()
	ctx := context.Background()

	var total int64
	for _, name := range []string{"a.pdf", "b.txt", "c.png"} {
		content := []byte("content of " + name)
		_, err := svc.Upload(ctx, "owner-1", "a@b.io", name, "", bytes.NewReader(content), int64(len(content)))
		assert.NoError(t, err)
		total += int64(len(content))
	}

	p := reg.Profiles["owner-1"]
	assert.Equal(t, int64(3), p.TotalDocuments)
	assert.Equal(t, total, p.StorageUsed)
}

func TestUpload_RegistryFailureRemovesObject(t *testing.T) {
	svc, reg, store := setup()
	reg.CreateErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), "owner-1", "a@b.io", "report.pdf", "", bytes.NewReader([]byte("x")), 1)
	assert.Error(t, err)

	// компенсирующее удаление: объект не осиротел
	assert.Empty(t, store.Objects)
}

func TestUpload_RejectedFileTouchesNothing(t *testing.T) {
	svc, reg, store := setup()

	_, err := svc.Upload(context.Background(), "owner-1", "a@b.io", "malware.exe", "", bytes.NewReader([]byte("x")), 1)
	assert.ErrorIs(t, err, documentService.ErrTypeNotAllowed)
	assert.Empty(t, store.Objects)
	assert.Empty(t, reg.Docs)
}

func TestList_OnlyOwnerDocuments(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	_, err := svc.Upload(ctx, "owner-1", "a@b.io", "mine.pdf", "", bytes.NewReader([]byte("x")), 1)
	assert.NoError(t, err)
	_, err = svc.Upload(ctx, "owner-2", "c@d.io", "theirs.pdf", "", bytes.NewReader([]byte("y")), 1)
	assert.NoError(t, err)

	docs, err := svc.List(ctx, "owner-1")
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	for _, d := range docs {
		assert.Equal(t, "owner-1", d.Owner)
	}
}

func TestDelete_TwoPhase(t *testing.T) {
	svc, reg, store := setup()
	ctx := context.Background()

	content := []byte("delete me")
	doc, err := svc.Upload(ctx, "owner-1", "a@b.io", "old.pdf", "", bytes.NewReader(content), int64(len(content)))
	assert.NoError(t, err)

	err = svc.Delete(ctx, "owner-1", doc.ID)
	assert.NoError(t, err)

	// и объект, и ряд удалены, счётчики уменьшены
	assert.Empty(t, store.Objects)
	docs, _ := svc.List(ctx, "owner-1")
	assert.Empty(t, docs)
	p := reg.Profiles["owner-1"]
	assert.Equal(t, int64(0), p.TotalDocuments)
	assert.Equal(t, int64(0), p.StorageUsed)
}

func TestDelete_StorageFailureKeepsRow(t *testing.T) {
	svc, _, store := setup()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "owner-1", "a@b.io", "stuck.pdf", "", bytes.NewReader([]byte("x")), 1)
	assert.NoError(t, err)

	store.DeleteErr = errors.New("storage down")
	err = svc.Delete(ctx, "owner-1", doc.ID)
	assert.Error(t, err)

	// ряд остался, повторное удаление после восстановления хранилища проходит
	docs, _ := svc.List(ctx, "owner-1")
	assert.Len(t, docs, 1)

	store.DeleteErr = nil
	assert.NoError(t, svc.Delete(ctx, "owner-1", doc.ID))
}

func TestDelete_ForeignDocumentNotFound(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "owner-1", "a@b.io", "mine.pdf", "", bytes.NewReader([]byte("x")), 1)
	assert.NoError(t, err)

	// чужой владелец не видит документ
	err = svc.Delete(ctx, "owner-2", doc.ID)
	assert.ErrorIs(t, err, documentService.ErrDocumentNotFound)

	err = svc.Delete(ctx, "owner-1", uuid.New())
	assert.ErrorIs(t, err, documentService.ErrDocumentNotFound)
}

func TestDelete_RowAlreadyGoneIsNotFound(t *testing.T) {
	svc, reg, _ := setup()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "owner-1", "a@b.io", "gone.pdf", "", bytes.NewReader([]byte("x")), 1)
	assert.NoError(t, err)

	// ряд исчез между проверкой и удалением — параллельное удаление успело
	// первым; это «не найдено», а не внутренняя ошибка
	reg.DeleteErr = documentRepo.ErrNotFound
	err = svc.Delete(ctx, "owner-1", doc.ID)
	assert.ErrorIs(t, err, documentService.ErrDocumentNotFound)
}

func TestProfile_GetOrCreateIsStable(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	p1, err := svc.Profile(ctx, "owner-1", "a@b.io")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), p1.TotalDocuments)
	assert.Equal(t, int64(0), p1.StorageUsed)

	// второй заход находит тот же профиль, дубликата нет
	p2, err := svc.Profile(ctx, "owner-1", "a@b.io")
	assert.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)
}
