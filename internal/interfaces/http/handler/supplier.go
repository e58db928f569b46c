package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	ingestapp "github.com/markethub/backend/internal/application/ingest"
	partnerapp "github.com/markethub/backend/internal/application/partner"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/interfaces/http/dto"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles the supplier self-service endpoints: shop
// state and price list feed uploads.
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
	ingestService   *ingestapp.IngestService
	maxFeedSize     int64
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService, ingestService *ingestapp.IngestService, maxFeedSize int64) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		ingestService:   ingestService,
		maxFeedSize:     maxFeedSize,
	}
}

// GetState handles GET /api/v1/supplier/state
func (h *SupplierHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplier, err := h.supplierService.GetOwnSupplier(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// UpdateState handles PUT /api/v1/supplier/state
func (h *SupplierHandler) UpdateState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.UpdateSupplierStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.SetAcceptingOrders(c.Request.Context(), userID, *req.AcceptingOrders)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// UploadPricelist handles POST /api/v1/supplier/pricelist. The body is
// the YAML feed itself; a multipart upload under the "file" field is
// accepted too.
func (h *SupplierHandler) UploadPricelist(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplier, err := h.supplierService.GetOwnSupplier(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !supplier.AcceptingOrders {
		h.HandleError(c, shared.NewDomainError("INVALID_STATE", "Shop is closed; enable order intake before uploading a price list"))
		return
	}

	raw, err := h.readFeed(c)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodePayloadSize, "Feed exceeds maximum allowed size", middleware.GetRequestID(c)))
			return
		}
		h.BadRequest(c, "Could not read feed body")
		return
	}
	if len(raw) == 0 {
		h.BadRequest(c, "Feed body is empty")
		return
	}

	report, err := h.ingestService.IngestRaw(c.Request.Context(), supplier.ID, raw)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

func (h *SupplierHandler) readFeed(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > h.maxFeedSize {
			return nil, &http.MaxBytesError{Limit: h.maxFeedSize}
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, h.maxFeedSize))
	}

	reader := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFeedSize)
	return io.ReadAll(reader)
}
