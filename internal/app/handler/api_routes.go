package handler

import (
	"aircond-backend/internal/app/middleware"
	"aircond-backend/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	staff := authMiddleware.WithAuthCheck(role.Editor, role.Admin, role.SuperAdmin)

	// ============ Витрина (публичные эндпоинты) ============
	api.GET("/products", h.GetProducts)       // GET каталог с поиском
	api.GET("/products/:key", h.GetProduct)   // GET по id или slug
	api.GET("/posts", h.GetPublishedPosts)    // GET лента блога
	api.GET("/posts/:key", h.GetPost)         // GET пост по id или slug

	// ============ Коммерческие предложения (Quotations) ============
	quotations := api.Group("/admin/quotations")
	{
		quotations.GET("", staff, h.GetQuotations)   // GET список или одно по ?id=
		quotations.POST("", staff, h.CreateQuotation) // POST создание с генерацией номера
		quotations.PUT("", staff, h.UpdateQuotation)  // PUT частичное изменение

		// Удаление КП доступно только суперадмину
		quotations.DELETE("", authMiddleware.WithAuthCheck(role.SuperAdmin), h.DeleteQuotation)
	}

	// ============ Блог (админка) ============
	posts := api.Group("/admin/posts")
	{
		posts.GET("", staff, h.GetPosts)                  // GET с фильтром по статусу
		posts.POST("", staff, h.CreatePost)               // POST создание
		posts.PUT("/:id", staff, h.UpdatePost)            // PUT изменение
		posts.PUT("/:id/status", staff, h.SetPostStatus)  // PUT смена статуса

		posts.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin, role.SuperAdmin), h.DeletePost)
	}

	// ============ Каталог продукции (админка) ============
	products := api.Group("/admin/products")
	{
		products.GET("", staff, h.GetAdminProducts)
		products.POST("", staff, h.CreateProduct)
		products.PUT("/:id", staff, h.UpdateProduct)
		products.POST("/:id/image", staff, h.UploadProductImage) // POST изображение в MinIO

		products.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin, role.SuperAdmin), h.DeleteProduct)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/login", h.AuthHandler.LoginUser)   // POST аутентификация JWT + cookie
		auth.POST("/logout", h.AuthHandler.LogoutUser) // POST выход, токен в blacklist

		// Защищенные эндпоинты
		auth.GET("/profile", staff, h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", staff, h.AuthHandler.UpdateProfile)
		auth.POST("/signature", staff, h.AuthHandler.UploadSignature) // POST подпись для печатной формы
	}

	// Пользователи создаются только суперадмином
	api.POST("/admin/users", authMiddleware.WithAuthCheck(role.SuperAdmin), h.AuthHandler.CreateUser)

	// Сводная статистика для дашборда
	api.GET("/admin/stats", staff, h.GetAdminStats)

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
