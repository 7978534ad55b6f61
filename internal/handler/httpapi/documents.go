package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"dataroom-service/internal/model/document"
	"dataroom-service/internal/service/documentService"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type uploadOutcome struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Size   int64  `json:"size,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) handleGetProfile(c *gin.Context) {
	owner := ownerFromContext(c)
	email := c.GetString(emailKey)

	p, err := h.docs.Profile(c.Request.Context(), owner.String(), email)
	if err != nil {
		h.log.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleListDocuments(c *gin.Context) {
	owner := ownerFromContext(c)

	docs, err := h.docs.List(c.Request.Context(), owner.String())
	if err != nil {
		h.log.Error("failed to list documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}
	if docs == nil {
		docs = []*document.Document{}
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// handleUpload принимает до N файлов за запрос; каждый файл проходит или
// падает независимо, итог отдаётся по файлам.
func (h *Handler) handleUpload(c *gin.Context) {
	owner := ownerFromContext(c)
	email := c.GetString(emailKey)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("no files provided: %v", err)})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	if len(files) > h.docs.MaxFiles() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many files: %d (max %d)", len(files), h.docs.MaxFiles())})
		return
	}

	outcomes := make([]uploadOutcome, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			outcomes = append(outcomes, uploadOutcome{Name: fh.Filename, Status: "error", Error: "failed to open file"})
			continue
		}

		doc, err := h.docs.Upload(c.Request.Context(), owner.String(), email,
			fh.Filename, fh.Header.Get("Content-Type"), src, fh.Size)
		src.Close()
		if err != nil {
			h.log.Error("upload failed", zap.String("file", fh.Filename), zap.Error(err))
			outcomes = append(outcomes, uploadOutcome{Name: fh.Filename, Status: "error", Error: err.Error()})
			continue
		}

		outcomes = append(outcomes, uploadOutcome{Name: doc.Name, Status: doc.Status, Size: doc.Size})
	}

	c.JSON(http.StatusOK, gin.H{"results": outcomes})
}

func (h *Handler) handleDeleteDocument(c *gin.Context) {
	owner := ownerFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	if err := h.docs.Delete(c.Request.Context(), owner.String(), id); err != nil {
		if errors.Is(err, documentService.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		h.log.Error("delete failed", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
