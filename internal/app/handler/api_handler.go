package handler

import (
	"errors"
	"net/http"

	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/dto"
	"aircond-backend/internal/app/repository"
	"aircond-backend/internal/app/role"
	"aircond-backend/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API админки и витрины
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
	}
}

// Получение текущего пользователя из контекста (Principal кладет middleware)
func (h *APIHandler) getUserFromContext(c *gin.Context) (uuid.UUID, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return uuid.Nil, role.Editor, errors.New("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uuid.UUID)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return uuid.Nil, r, errors.New("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Error: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// ============ ДОМЕН КП (Quotations) ============

// GetQuotations получает список КП или одно КП по id
// @Summary Получение коммерческих предложений
// @Description Без параметра id возвращает все КП (новые сверху), с параметром - одно КП с позициями и создателем
// @Tags Quotations
// @Produce json
// @Security AdminAuth
// @Param id query string false "Идентификатор или номер КП"
// @Success 200 {object} ds.Quotation
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/quotations [get]
func (h *APIHandler) GetQuotations(c *gin.Context) {
	id := c.Query("id")

	if id != "" {
		quotation, err := h.Repository.GetQuotationByIDOrNumber(id)
		if errors.Is(err, repository.ErrQuotationNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Not found")
			return
		}
		if err != nil {
			logrus.Error("Error getting quotation: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		c.JSON(http.StatusOK, quotation)
		return
	}

	quotations, err := h.Repository.GetAllQuotations()
	if err != nil {
		logrus.Error("Error getting quotations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, quotations)
}

// CreateQuotation создает новое КП
// @Summary Создание КП
// @Description Создает КП. Если номер не передан, генерируется QT-<год>-<номер>. Создатель берется из токена.
// @Tags Quotations
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.CreateQuotationRequest true "Данные КП"
// @Success 201 {object} ds.Quotation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/quotations [post]
func (h *APIHandler) CreateQuotation(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	quotation := ds.Quotation{
		Number: req.Number,
		Status: req.Status,
		Client: ds.QuotationClient{
			Name:    req.Client.Name,
			Company: req.Client.Company,
			Address: req.Client.Address,
			TaxID:   req.Client.TaxID,
			Email:   req.Client.Email,
			Phone:   req.Client.Phone,
		},
		Items:       quotationItemsFromPayload(req.Items),
		Subtotal:    req.Subtotal,
		Discount:    req.Discount,
		Tax:         req.Tax,
		GrandTotal:  req.GrandTotal,
		DateIssued:  req.DateIssued,
		ValidUntil:  req.ValidUntil,
		ReferenceNo: req.ReferenceNo,
		CreatedByID: userID,
	}

	if err := h.Repository.CreateQuotation(&quotation); err != nil {
		logrus.Error("Error creating quotation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, quotation)
}

// UpdateQuotation обновляет поля КП
// @Summary Обновление КП
// @Description Частичное обновление: переданные поля перезаписываются, позиции заменяются целиком
// @Tags Quotations
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.UpdateQuotationRequest true "id и обновляемые поля"
// @Success 200 {object} ds.Quotation
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/quotations [put]
func (h *APIHandler) UpdateQuotation(c *gin.Context) {
	var req dto.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	fields := map[string]interface{}{}
	if req.Number != nil {
		fields["number"] = *req.Number
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Client != nil {
		fields["client_name"] = req.Client.Name
		fields["client_company"] = req.Client.Company
		fields["client_address"] = req.Client.Address
		fields["client_tax_id"] = req.Client.TaxID
		fields["client_email"] = req.Client.Email
		fields["client_phone"] = req.Client.Phone
	}
	if req.Subtotal != nil {
		fields["subtotal"] = *req.Subtotal
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Tax != nil {
		fields["tax"] = *req.Tax
	}
	if req.GrandTotal != nil {
		fields["grand_total"] = *req.GrandTotal
	}
	if req.DateIssued != nil {
		fields["date_issued"] = *req.DateIssued
	}
	if req.ValidUntil != nil {
		fields["valid_until"] = *req.ValidUntil
	}
	if req.ReferenceNo != nil {
		fields["reference_no"] = *req.ReferenceNo
	}

	var items []ds.QuotationItem
	if req.Items != nil {
		items = quotationItemsFromPayload(req.Items)
	}

	quotation, err := h.Repository.UpdateQuotation(id, fields, items)
	if errors.Is(err, repository.ErrQuotationNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error updating quotation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, quotation)
}

// DeleteQuotation удаляет КП
// @Summary Удаление КП
// @Description Удаляет КП вместе с позициями. Доступно только роли superadmin.
// @Tags Quotations
// @Produce json
// @Security AdminAuth
// @Param id query string true "Идентификатор КП"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/quotations [delete]
func (h *APIHandler) DeleteQuotation(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		h.errorResponse(c, http.StatusBadRequest, "Missing id parameter")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	removed, err := h.Repository.DeleteQuotation(id)
	if err != nil {
		logrus.Error("Error deleting quotation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !removed {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

func quotationItemsFromPayload(payload []dto.QuotationItemPayload) []ds.QuotationItem {
	items := make([]ds.QuotationItem, len(payload))
	for i, p := range payload {
		quantity := p.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items[i] = ds.QuotationItem{
			Description:     p.Description,
			Quantity:        quantity,
			UnitPrice:       p.UnitPrice,
			DiscountPercent: p.DiscountPercent,
			Position:        i,
		}
	}
	return items
}
