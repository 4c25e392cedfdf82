package handler

import (
	"errors"
	"net/http"
	"strconv"

	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/dto"
	"aircond-backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН БЛОГ (Blog Posts) ============

// GetPosts получает список постов
// @Summary Получение постов блога
// @Description Возвращает посты с фильтрацией по legacy-коду статуса (1=Draft, 2=Published, 3=In Review)
// @Tags Blog
// @Produce json
// @Security AdminAuth
// @Param status query int false "Legacy-код статуса"
// @Success 200 {array} ds.BlogPost
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/posts [get]
func (h *APIHandler) GetPosts(c *gin.Context) {
	statusCode := 0
	if s := c.Query("status"); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val > 0 {
			statusCode = val
		}
	}

	posts, err := h.Repository.GetAllPosts(statusCode)
	if err != nil {
		logrus.Error("Error getting posts: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPublishedPosts публичная лента блога
// @Summary Опубликованные посты
// @Description Возвращает только посты в статусе Published для витрины
// @Tags Blog
// @Produce json
// @Success 200 {array} ds.BlogPost
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/posts [get]
func (h *APIHandler) GetPublishedPosts(c *gin.Context) {
	posts, err := h.Repository.GetAllPosts(2)
	if err != nil {
		logrus.Error("Error getting posts: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost получает один пост по id или slug
// @Summary Получение поста
// @Tags Blog
// @Produce json
// @Param key path string true "Идентификатор или slug"
// @Success 200 {object} ds.BlogPost
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/posts/{key} [get]
func (h *APIHandler) GetPost(c *gin.Context) {
	key := c.Param("key")

	post, err := h.Repository.GetPostBySlugOrID(key)
	if errors.Is(err, repository.ErrPostNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error getting post: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost создает пост
// @Summary Создание поста
// @Description Создает пост блога в статусе Draft (если код не передан)
// @Tags Blog
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.CreatePostRequest true "Данные поста"
// @Success 201 {object} ds.BlogPost
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/posts [post]
func (h *APIHandler) CreatePost(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !ds.ValidSlug(req.Slug) {
		h.errorResponse(c, http.StatusBadRequest, "Invalid slug")
		return
	}

	post := ds.BlogPost{
		Title:    req.Title,
		Slug:     req.Slug,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		AuthorID: userID,
	}
	if req.StatusCode > 0 {
		post.StatusID = h.Repository.ResolveStatusID(req.StatusCode)
		post.LegacyStatusCode = req.StatusCode
	}

	if err := h.Repository.CreatePost(&post); err != nil {
		logrus.Error("Error creating post: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost обновляет пост
// @Summary Обновление поста
// @Tags Blog
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор поста"
// @Param request body dto.UpdatePostRequest true "Обновляемые поля"
// @Success 200 {object} ds.BlogPost
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/posts/{id} [put]
func (h *APIHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Slug != nil {
		if !ds.ValidSlug(*req.Slug) {
			h.errorResponse(c, http.StatusBadRequest, "Invalid slug")
			return
		}
		fields["slug"] = *req.Slug
	}
	if req.Excerpt != nil {
		fields["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}

	post, err := h.Repository.UpdatePost(id, fields)
	if errors.Is(err, repository.ErrPostNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error updating post: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, post)
}

// SetPostStatus переводит пост в другой статус
// @Summary Смена статуса поста
// @Description Принимает legacy-код статуса и резолвит его в запись справочника
// @Tags Blog
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор поста"
// @Param request body dto.SetPostStatusRequest true "Код статуса"
// @Success 200 {object} ds.BlogPost
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/posts/{id}/status [put]
func (h *APIHandler) SetPostStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	var req dto.SetPostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	post, err := h.Repository.SetPostStatus(id, req.StatusCode)
	if errors.Is(err, repository.ErrPostNotFound) {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.Error("Error setting post status: ", err)
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost удаляет пост
// @Summary Удаление поста
// @Tags Blog
// @Produce json
// @Security AdminAuth
// @Param id path string true "Идентификатор поста"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/posts/{id} [delete]
func (h *APIHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	removed, err := h.Repository.DeletePost(id)
	if err != nil {
		logrus.Error("Error deleting post: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !removed {
		h.errorResponse(c, http.StatusNotFound, "Not found")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// GetAdminStats отдает счетчики для дашборда админки
// @Summary Статистика админки
// @Description Количество постов по статусам (через резолвер legacy-кодов), КП по статусам и товаров
// @Tags Stats
// @Produce json
// @Security AdminAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/stats [get]
func (h *APIHandler) GetAdminStats(c *gin.Context) {
	// Незасеянный справочник статусов дает здесь нули, а не ошибку
	posts := dto.BlogStatsResponse{
		Draft:     h.Repository.CountPostsByStatusCode(1),
		Published: h.Repository.CountPostsByStatusCode(2),
		InReview:  h.Repository.CountPostsByStatusCode(3),
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"quotations": gin.H{
			"draft":     h.Repository.CountQuotationsByStatus(ds.QuotationStatusDraft),
			"sent":      h.Repository.CountQuotationsByStatus(ds.QuotationStatusSent),
			"cancelled": h.Repository.CountQuotationsByStatus(ds.QuotationStatusCancelled),
		},
		"products": h.Repository.CountProducts(),
	})
}
