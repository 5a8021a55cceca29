package api

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/internal/upload"
)

const (
	formFieldFile      = "file"
	msgFileRequired    = "File is required"
	msgFileTooLarge    = "File is too large"
	audiobookExtension = ".pdf"
)

// AudiobookConverter turns an uploaded PDF into narration audio
type AudiobookConverter interface {
	ValidateUpload(mimeType string) error
	Convert(ctx context.Context, path string) (*domain.AudiobookResult, error)
}

// ShowNotesGenerator turns an uploaded recording into a transcript and show notes
type ShowNotesGenerator interface {
	ValidateUpload(mimeType string) error
	Process(ctx context.Context, path, mimeType string) (*domain.ShowNotesResult, error)
}

// Handler serves the upload endpoints
type Handler struct {
	store     *upload.Store
	audiobook AudiobookConverter
	showNotes ShowNotesGenerator
	logger    *zap.Logger
}

// NewHandler creates a new upload handler
func NewHandler(store *upload.Store, audiobook AudiobookConverter, showNotes ShowNotesGenerator, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		audiobook: audiobook,
		showNotes: showNotes,
		logger:    logger,
	}
}

// PDFToAudio handles POST /pdf-to-audio
func (h *Handler) PDFToAudio(c echo.Context) error {
	fileHeader, mimeType, err := h.formFile(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.audiobook.ValidateUpload(mimeType); err != nil {
		return h.fail(c, err)
	}

	file, err := h.persist(fileHeader, audiobookExtension, mimeType)
	if err != nil {
		return h.fail(c, err)
	}
	defer file.Cleanup()

	result, err := h.audiobook.Convert(c.Request().Context(), file.Path)
	if err != nil {
		return h.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	return c.Blob(http.StatusOK, result.MimeType, result.Audio)
}

// TranscribeAndNotes handles POST /transcribe-and-notes
func (h *Handler) TranscribeAndNotes(c echo.Context) error {
	fileHeader, mimeType, err := h.formFile(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.showNotes.ValidateUpload(mimeType); err != nil {
		return h.fail(c, err)
	}

	file, err := h.persist(fileHeader, audioExtension(mimeType), mimeType)
	if err != nil {
		return h.fail(c, err)
	}
	defer file.Cleanup()

	result, err := h.showNotes.Process(c.Request().Context(), file.Path, mimeType)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// formFile returns the uploaded file and its declared content type
func (h *Handler) formFile(c echo.Context) (*multipart.FileHeader, string, error) {
	fileHeader, err := c.FormFile(formFieldFile)
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return nil, "", domain.ValidationError(domain.ErrInvalidInput, msgFileTooLarge)
	}
	if err != nil {
		h.logger.Debug("Missing upload", zap.Error(err))
		return nil, "", domain.ValidationError(domain.ErrInvalidInput, msgFileRequired)
	}

	return fileHeader, declaredMimeType(fileHeader), nil
}

func (h *Handler) persist(fileHeader *multipart.FileHeader, suffix, mimeType string) (*upload.File, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, domain.StorageError("open upload", err)
	}
	defer src.Close()

	return h.store.Save(src, suffix, mimeType)
}

// fail maps a tagged error to its HTTP response
func (h *Handler) fail(c echo.Context, err error) error {
	kind := domain.KindOf(err)
	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("kind", string(kind)),
		zap.Bool("retryable", domain.IsRetryable(err)),
		zap.Error(err),
	}

	if kind == domain.KindValidation {
		h.logger.Warn("Rejected upload", fields...)

		code := CodeInvalidInput
		if errors.Is(err, domain.ErrEmptyContent) {
			code = CodeEmptyContent
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   code,
			Message: domain.ValidationMessage(err),
		})
	}

	h.logger.Error("Request failed", fields...)

	code := CodeInternal
	switch kind {
	case domain.KindUpstreamProvider:
		code = CodeUpstreamProvider
	case domain.KindMalformedInput:
		code = CodeMalformedInput
	case domain.KindStorage:
		code = CodeStorage
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

// HandleHTTPError replaces echo's default error handler so errors raised outside the
// handlers (recovered panics, body limit, routing) keep the ErrorResponse shape.
func (h *Handler) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Code == http.StatusRequestEntityTooLarge:
			err = domain.ValidationError(domain.ErrInvalidInput, msgFileTooLarge)
		case httpErr.Code < http.StatusInternalServerError:
			h.respond(c, httpErr.Code, ErrorResponse{
				Error:   errorCode(httpErr.Code),
				Message: fmt.Sprint(httpErr.Message),
			})
			return
		}
	}

	if respErr := h.fail(c, err); respErr != nil {
		h.logger.Error("Failed to write error response", zap.Error(respErr))
	}
}

func (h *Handler) respond(c echo.Context, status int, body ErrorResponse) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// errorCode turns a status such as 405 into "method_not_allowed"
func errorCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

// declaredMimeType returns the part's Content-Type without parameters, lower-cased
func declaredMimeType(fileHeader *multipart.FileHeader) string {
	raw := fileHeader.Header.Get(echo.HeaderContentType)
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return mediaType
}

func audioExtension(mimeType string) string {
	if mimeType == domain.MimeTypeAudioWAV {
		return ".wav"
	}
	return ".mp3"
}
