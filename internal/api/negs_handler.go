package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/negspulse/internal/domain/dto"
	"github.com/guttosm/negspulse/internal/middleware"
	"github.com/guttosm/negspulse/internal/negs"
)

// uploadField is the multipart form field holding the NEGS file.
const uploadField = "file"

// ParseNegs handles POST /api/v1/negs/parse requests.
//
// The uploaded file is decoded in memory and returned as JSON; nothing is persisted.
//
// Responses:
//   - 200 OK: DocumentResponse with header, trades and trailer.
//   - 400 Bad Request: missing "file" field or a name without the .txt extension.
//   - 413 Request Entity Too Large: upload above the configured limit.
//   - 422 Unprocessable Entity: structural (FormatError) or field (DecodeError) problem.
//
// ParseNegs godoc
// @Summary      Decode a NEGS file
// @Description  Decodes a fixed-width NEGS trade file (STANDARD or EXTENDED layout) into header, trades and trailer
// @Tags         negs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "NEGS .txt file"
// @Success      200   {object}  dto.DocumentResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse     "Bad Request"
// @Failure      413   {object}  dto.ErrorResponse     "Too Large"
// @Failure      422   {object}  dto.ErrorResponse     "Invalid NEGS file"
// @Router       /api/v1/negs/parse [post]
func (h *Handler) ParseNegs(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "file too large", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "file is required", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to open upload", err)
		return
	}
	defer func() { _ = f.Close() }()

	doc, err := h.docs.Parse(c.Request.Context(), fh.Filename, f)
	switch {
	case errors.Is(err, negs.ErrNotTxt):
		middleware.AbortWithError(c, http.StatusBadRequest, "only .txt files are accepted", err)
		return
	case err != nil:
		status := middleware.StatusFor(err)
		msg := "failed to decode file"
		if status == http.StatusUnprocessableEntity {
			msg = "invalid NEGS file"
		}
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDocumentResponse(fh.Filename, doc))
}

// ListFiles handles GET /api/v1/negs/files requests.
//
// ListFiles godoc
// @Summary      List ingested NEGS files
// @Description  Returns the most recently ingested documents, newest session first
// @Tags         negs
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of files (1-500)" default(50)
// @Success      200    {object}  dto.FileListResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/negs/files [get]
func (h *Handler) ListFiles(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("limit must be a positive integer", err))
			return
		}
		limit = n
	}

	files, err := h.docs.ListFiles(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list files", err))
		return
	}

	c.JSON(http.StatusOK, dto.FileListResponse{Count: len(files), Files: files})
}
