package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"aircond-backend/internal/app/config"
	"aircond-backend/internal/app/ds"
	"aircond-backend/internal/app/dto"
	"aircond-backend/internal/app/middleware"
	"aircond-backend/internal/app/redis"
	"aircond-backend/internal/app/repository"
	"aircond-backend/internal/app/role"
	"aircond-backend/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	MinIOClient *storage.MinIOClient
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, minioClient *storage.MinIOClient, config *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Config:      config,
	}
}

// generateHashString генерирует SHA-1 хеш из строки
func generateHashString(s string) string {
	h := sha1.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// LoginUser аутентификация пользователя админки
// @Summary Вход в админку
// @Description Проверяет логин и пароль, возвращает JWT и ставит cookie admin_auth
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Хешируем входной пароль
	hashedPassword := generateHashString(request.Password)

	// Проверяем пользователя в базе данных
	user, err := h.Repository.GetUserByLogin(request.Login)
	if err != nil || user.Password != hashedPassword {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid login or password"))
		return
	}

	userRole := role.Role(user.Role)

	// Создание JWT токена
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "aircond-cms",
		},
		UserID: user.ID,
		Role:   userRole,
	})

	accessToken, err := token.SignedString([]byte(h.Config.JWT.Token))
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	// Cookie для админки, токен в теле - для API-клиентов
	maxAge := int(h.Config.JWT.ExpiresIn.Seconds())
	ctx.SetCookie(middleware.AuthCookieName, accessToken, maxAge, "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  accessToken,
		"user": dto.UserResponse{
			ID:       user.ID.String(),
			Login:    user.Login,
			FullName: user.FullName,
			Role:     userRole.String(),
		},
		"expires_in": maxAge,
		"token_type": "Bearer",
	})
}

// LogoutUser выход пользователя из админки
// @Summary Выход из админки
// @Description Добавляет токен в blacklist и удаляет cookie
// @Tags Authentication
// @Produce json
// @Security AdminAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString, err := ctx.Cookie(middleware.AuthCookieName)
	if err != nil || tokenString == "" {
		tokenString = ctx.GetHeader("Authorization")
		if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
			tokenString = tokenString[7:]
		}
	}
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("no credentials supplied"))
		return
	}

	// Парсинг токена для получения TTL
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	// Удаляем cookie в любом случае
	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 && h.RedisClient != nil {
		if err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "logged out",
	})
}

// GetUserProfile получение профиля пользователя
// @Summary Профиль текущего пользователя
// @Tags Authentication
// @Produce json
// @Security AdminAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid user ID"))
		return
	}

	user, err := h.Repository.GetUserByID(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("user not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{
		ID:       user.ID.String(),
		Login:    user.Login,
		FullName: user.FullName,
		Role:     role.Role(user.Role).String(),
	})
}

// UpdateProfile обновление профиля текущего пользователя
// @Summary Обновление профиля
// @Description Меняет имя и/или пароль текущего пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.UpdateUserRequest true "Обновляемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid user ID"))
		return
	}

	var request dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	var fullName, password *string
	if request.FullName != "" {
		fullName = &request.FullName
	}
	if request.Password != "" {
		hashed := generateHashString(request.Password)
		password = &hashed
	}

	if err := h.Repository.UpdateUser(id, fullName, password); err != nil {
		logrus.Error("Error updating profile: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("failed to update profile"))
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "profile updated",
	})
}

// CreateUser создание пользователя админки
// @Summary Создание пользователя
// @Description Создает пользователя с заданной ролью (только superadmin)
// @Tags Authentication
// @Accept json
// @Produce json
// @Security AdminAuth
// @Param request body dto.CreateUserRequest true "Данные пользователя"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/users [post]
func (h *AuthHandler) CreateUser(ctx *gin.Context) {
	var request dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	// Проверяем существует ли пользователь
	exists, _ := h.Repository.UserExistsByLogin(request.Login)
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("login already taken"))
		return
	}

	userRole, _ := role.Parse(request.Role)
	hashedPassword := generateHashString(request.Password)

	user, err := h.Repository.CreateUser(request.Login, hashedPassword, request.FullName, int(userRole))
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("failed to create user"))
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserResponse{
		ID:       user.ID.String(),
		Login:    user.Login,
		FullName: user.FullName,
		Role:     userRole.String(),
	})
}

// UploadSignature загружает изображение подписи текущего пользователя
// @Summary Загрузка подписи
// @Description Подпись выводится в печатной форме КП
// @Tags Authentication
// @Accept multipart/form-data
// @Produce json
// @Security AdminAuth
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/signature [post]
func (h *AuthHandler) UploadSignature(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("user not authenticated"))
		return
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid user ID"))
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("missing image file"))
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	var signatureURL string
	if h.MinIOClient != nil {
		signatureURL, err = h.MinIOClient.UploadFile(fileData, file.Filename, "signature")
		if err != nil {
			logrus.Error("Error uploading signature: ", err)
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	} else {
		signatureURL = "uploaded_" + file.Filename
	}

	if err := h.Repository.UpdateUserSignature(id, signatureURL); err != nil {
		logrus.Error("Error saving signature: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "signature uploaded",
		Data:    gin.H{"signature_url": signatureURL},
	})
}

// errorHandler централизованная обработка ошибок
func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, dto.ErrorResponse{
		Error: err.Error(),
	})
}
