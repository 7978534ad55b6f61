package documentService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"dataroom-service/internal/MinIO"
	"dataroom-service/internal/model/document"
	"dataroom-service/internal/model/profile"
	"dataroom-service/internal/repository/documentRepo"

	"github.com/google/uuid"
)

const storagePrefix = "documents"

var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"txt":  {},
	"doc":  {},
	"docx": {},
	"jpg":  {},
	"png":  {},
}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrTypeNotAllowed   = errors.New("file type not allowed")
	ErrEmptyFilename    = errors.New("empty filename")
)

type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (MinIO.UploadResult, error)
	DeleteFile(ctx context.Context, key string) error
}

type DocumentStore interface {
	CreateWithStats(ctx context.Context, doc *document.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error)
	ListByOwner(ctx context.Context, owner string) ([]*document.Document, error)
	DeleteWithStats(ctx context.Context, id uuid.UUID, owner string) error
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, owner, email string) (*profile.UserProfile, error)
}

type DocumentService struct {
	docs        DocumentStore
	profiles    ProfileStore
	store       ObjectStore
	maxFiles    int
	maxFileSize int64
}

func New(docs DocumentStore, profiles ProfileStore, store ObjectStore, maxFiles int, maxFileSize int64) *DocumentService {
	return &DocumentService{
		docs:        docs,
		profiles:    profiles,
		store:       store,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSize,
	}
}

func (s *DocumentService) MaxFiles() int {
	return s.maxFiles
}

// ValidateFile проверяет файл до записи в хранилище: расширение из
// allow-листа и размер в пределах лимита.
func (s *DocumentService) ValidateFile(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return ErrEmptyFilename
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: .%s", ErrTypeNotAllowed, ext)
	}
	if size > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

// Upload кладёт файл в хранилище и синхронизирует реестр: ряд документа и
// счётчики профиля пишутся одной транзакцией. Профиль создаётся явно до
// загрузки — пути «профиль не загружен, пропускаем» здесь нет.
// Если запись в реестр не удалась, только что загруженный объект удаляется.
func (s *DocumentService) Upload(ctx context.Context, owner, email, filename, contentType string, fileData io.Reader, size int64) (*document.Document, error) {
	if err := s.ValidateFile(filename, size); err != nil {
		return nil, err
	}

	if _, err := s.profiles.GetOrCreate(ctx, owner, email); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	// ключ уникален в пространстве владельца по соглашению: повторная
	// загрузка того же имени перезаписывает объект
	key := fmt.Sprintf("%s/%s/%s", storagePrefix, owner, path.Base(filename))
	result, err := s.store.UploadFile(ctx, key, fileData, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload file to storage error: %w", err)
	}

	doc := &document.Document{
		ID:         uuid.New(),
		Owner:      owner,
		Name:       DeriveName(result.Key),
		Key:        result.Key,
		Size:       result.Size,
		Type:       DeriveType(DeriveName(result.Key)),
		UploadedAt: time.Now(),
		Status:     document.StatusUploaded,
	}

	if err := s.docs.CreateWithStats(ctx, doc); err != nil {
		_ = s.store.DeleteFile(ctx, result.Key)
		return nil, fmt.Errorf("create document entry error: %w", err)
	}

	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, owner string) ([]*document.Document, error) {
	docs, err := s.docs.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentService) Profile(ctx context.Context, owner, email string) (*profile.UserProfile, error) {
	p, err := s.profiles.GetOrCreate(ctx, owner, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// Delete удаляет в два шага: сначала объект в хранилище, затем ряд реестра
// вместе со счётчиками профиля. Упавший первый шаг оставляет ряд на месте,
// повторное удаление безопасно — отсутствующий объект считается удалённым.
func (s *DocumentService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil || doc.Owner != owner {
		return ErrDocumentNotFound
	}

	if err := s.store.DeleteFile(ctx, doc.Key); err != nil {
		return fmt.Errorf("remove object from storage: %w", err)
	}

	if err := s.docs.DeleteWithStats(ctx, id, owner); err != nil {
		// параллельное удаление могло успеть первым
		if errors.Is(err, documentRepo.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeriveName — последний сегмент ключа хранилища, "Unknown" если ключ пуст.
func DeriveName(key string) string {
	parts := strings.Split(key, "/")
	name := parts[len(parts)-1]
	if name == "" {
		return "Unknown"
	}
	return name
}

// DeriveType — расширение имени в верхнем регистре, "UNKNOWN" если его нет.
func DeriveType(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(ext)
}
