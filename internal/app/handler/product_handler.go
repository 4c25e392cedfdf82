package handler

import (
	"errors"
	"io"
	"net/http"

	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/dto"
	"aircond-backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН КАТАЛОГ (Products) ============

// GetProducts получает список товаров витрины
// @Summary Получение каталога
// @Description Возвращает опубликованные товары с поиском по названию
// @Tags Products
// @Produce json
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (h *APIHandler) GetProducts(c *gin.Context) {
	searchQuery := c.Query("query")

	products, err := h.Repository.GetAllProducts(searchQuery, true)
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetAdminProducts получает все товары включая снятые с витрины
// @Summary Получение каталога для админки
// @Tags Products
// @Produce json
// @Security AdminAuth
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/admin/products [get]
func (h *APIHandler) GetAdminProducts(c *gin.Context) {
	searchQuery := c.Query("query")

	products, err := h.Repository.GetAllProducts(searchQuery, false)
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetProduct получает один товар
// @Summary Получение товара по id или slug
// @Tags Products
// @Produce json
// @Param key path string true "Идентификатор или slug товара"
// @Success 200 {object} ds.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{key} [get]
func (h *APIHandler) GetProduct(c *gin.Context) {
	key := c.Param("key")

	product, err := h.Repository.GetProductByIDOrSlug(key)
	if errors.Is(err, repository.ErrProductNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error getting product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct создает товар
// @Summary Создание товара
// @Tags Products
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.CreateProductRequest true "Данные товара"
// @Success 201 {object} ds.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/products [post]
func (h *APIHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !ds.ValidSlug(req.Slug) {
		h.errorResponse(c, http.StatusBadRequest, "Invalid slug")
		return
	}

	product := ds.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		ShortDesc:   req.ShortDesc,
		Description: req.Description,
		Price:       req.Price,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		product.IsPublished = *req.IsPublished
	}

	if err := h.Repository.CreateProduct(&product); err != nil {
		logrus.Error("Error creating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обновляет товар
// @Summary Обновление товара
// @Tags Products
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор товара"
// @Param request body dto.UpdateProductRequest true "Обновляемые поля"
// @Success 200 {object} ds.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/products/{id} [put]
func (h *APIHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Slug != nil {
		if !ds.ValidSlug(*req.Slug) {
			h.errorResponse(c, http.StatusBadRequest, "Invalid slug")
			return
		}
		fields["slug"] = *req.Slug
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.ShortDesc != nil {
		fields["short_desc"] = *req.ShortDesc
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}

	product, err := h.Repository.UpdateProduct(id, fields)
	if errors.Is(err, repository.ErrProductNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error updating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct удаляет товар
// @Summary Удаление товара
// @Description Логическое удаление, изображение убирается из MinIO
// @Tags Products
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор товара"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/products/{id} [delete]
func (h *APIHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	// Сначала получаем товар чтобы удалить изображение
	product, _ := h.Repository.GetProductByIDOrSlug(id.String())
	if product != nil && product.ImageURL != nil && *product.ImageURL != "" {
		if h.MinIOClient != nil {
			if err := h.MinIOClient.DeleteFile(*product.ImageURL); err != nil {
				logrus.Warnf("Failed to delete image from MinIO: %v", err)
			}
		}
		_ = h.Repository.DeleteProductImage(id)
	}

	removed, err := h.Repository.DeleteProduct(id)
	if err != nil {
		logrus.Error("Error deleting product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !removed {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// UploadProductImage загружает изображение товара
// @Summary Загрузка изображения товара
// @Description Загружает изображение в MinIO, старое удаляется
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор товара"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/products/{id}/image [post]
func (h *APIHandler) UploadProductImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	product, err := h.Repository.GetProductByIDOrSlug(id.String())
	if err != nil || product == nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Missing image file")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Удаляем старое изображение из MinIO (если есть)
	if product.ImageURL != nil && *product.ImageURL != "" && h.MinIOClient != nil {
		if err := h.MinIOClient.DeleteFile(*product.ImageURL); err != nil {
			logrus.Warnf("Failed to delete old image %s: %v", *product.ImageURL, err)
		}
	}

	var imageURL string
	if h.MinIOClient != nil {
		imageURL, err = h.MinIOClient.UploadFile(fileData, file.Filename, "product")
		if err != nil {
			logrus.Error("Error uploading to MinIO: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
			return
		}
	} else {
		// Fallback если MinIO не настроен
		imageURL = "uploaded_" + file.Filename
	}

	if err := h.Repository.UpdateProductImage(id, imageURL); err != nil {
		logrus.Error("Error updating product image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.successResponse(c, http.StatusOK, "Image uploaded", gin.H{
		"image_url": imageURL,
	})
}
