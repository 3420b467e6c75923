package candidates

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"candidate-backend/internal/extract"
	"candidate-backend/internal/history"
	"candidate-backend/internal/match"
	"candidate-backend/internal/profile"
	"candidate-backend/internal/shared/metrics"
	"candidate-backend/internal/shared/server/respond"
	"candidate-backend/internal/shared/storage/object"
	"candidate-backend/internal/shared/telemetry"
	"candidate-backend/internal/vacancies"
)

const maxUploadSize = 5 << 20 // 5MB

// Handler wires the resume matching pipeline to HTTP.
type Handler struct {
	Builder *profile.Builder
	Engine  *match.Engine
	Catalog *vacancies.Catalog
	Store   object.ObjectStore
	History history.Repo
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidate_match", h.Match)
	rg.GET("/matches", h.Recent)
}

// Match accepts a resume upload, builds a candidate profile and scores it
// against every vacancy in the catalog.
func (h *Handler) Match(c *gin.Context) {
	metrics.IncMatchStarted()
	start := time.Now()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileName, declaredType, data, err := readUpload(c)
	if err != nil {
		metrics.IncMatchFailed()
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	storageKey, _, err := h.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		metrics.IncMatchFailed()
		telemetry.Error("upload.save.failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "failed to persist uploaded file")
		return
	}

	candidateProfile, err := h.Builder.Build(ctx, data, fileName, declaredType)
	if err != nil {
		metrics.IncMatchFailed()
		telemetry.Error("profile.build.failed", map[string]any{
			"file_name":   fileName,
			"storage_key": storageKey,
			"error":       err.Error(),
		})
		// Extraction and profile failures are input problems; only
		// infrastructure failures get a 5xx.
		var unsupported *extract.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			respond.Error(c, http.StatusBadRequest, unsupported.Error())
			return
		}
		respond.Error(c, http.StatusBadRequest, "failed to process resume: "+err.Error())
		return
	}

	result, err := h.Engine.Match(ctx, candidateProfile, h.Catalog)
	if err != nil {
		metrics.IncMatchFailed()
		var invalid *match.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			respond.Error(c, http.StatusBadRequest, invalid.Error())
		case errors.Is(err, match.ErrNoResult):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			telemetry.Error("match.failed", map[string]any{
				"file_name": fileName,
				"error":     err.Error(),
			})
			respond.Error(c, http.StatusInternalServerError, "failed to score resume")
		}
		return
	}

	metrics.IncMatchCompleted()
	metrics.ObserveMatchDurationMs(float64(time.Since(start).Milliseconds()))

	h.record(c, result)

	respond.OK(c, result)
}

// Recent lists recently persisted match outcomes.
func (h *Handler) Recent(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}

	records, err := h.History.ListRecent(c.Request.Context(), limit)
	if err != nil {
		telemetry.Error("history.list.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "failed to list match history")
		return
	}

	if records == nil {
		records = []history.Record{}
	}
	respond.OK(c, records)
}

// record persists the outcome best-effort; a storage failure never turns a
// successful match into an error response.
func (h *Handler) record(c *gin.Context, result match.Result) {
	rec := history.Record{
		ID:         uuid.NewString(),
		Vacancy:    result.Vacancy,
		Percentage: result.Percentage,
		FullName:   result.FullName,
		Email:      result.Email,
		Phone:      result.Phone,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.History.Create(c.Request.Context(), rec); err != nil {
		telemetry.Error("history.create.failed", map[string]any{
			"record_id": rec.ID,
			"error":     err.Error(),
		})
	}
}

// readUpload returns the uploaded file name, its declared content type and
// bytes. Multipart field "file" is the primary shape, with the file part's
// own header as the declared type; a raw body with a filename query parameter
// is also accepted for curl-style clients.
func readUpload(c *gin.Context) (string, string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err == nil {
		f, openErr := fileHeader.Open()
		if openErr != nil {
			return "", "", nil, errors.New("unable to read file")
		}
		defer f.Close()
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			return "", "", nil, errors.New("unable to read file")
		}
		return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, nil
	}

	fileName := c.Query("filename")
	if fileName == "" {
		return "", "", nil, errors.New("file is required")
	}
	data, readErr := io.ReadAll(c.Request.Body)
	if readErr != nil || len(data) == 0 {
		return "", "", nil, errors.New("file is required")
	}
	return fileName, c.ContentType(), data, nil
}
