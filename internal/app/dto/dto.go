package dto

// ============ Общие структуры ============

// Формат ошибки зафиксирован контрактом админки: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

// ============ Коммерческие предложения (Quotations) ============

type QuotationClientPayload struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type QuotationItemPayload struct {
	Description     string  `json:"description" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice       float64 `json:"unit_price" binding:"omitempty,gte=0"`
	DiscountPercent float64 `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
}

type CreateQuotationRequest struct {
	Number      string                 `json:"number"`
	Status      string                 `json:"status" binding:"omitempty,oneof=draft sent cancelled"`
	Client      QuotationClientPayload `json:"client"`
	Items       []QuotationItemPayload `json:"items"`
	Subtotal    float64                `json:"subtotal"`
	Discount    float64                `json:"discount"`
	Tax         float64                `json:"tax"`
	GrandTotal  float64                `json:"grand_total"`
	DateIssued  string                 `json:"date_issued"`
	ValidUntil  string                 `json:"valid_until"`
	ReferenceNo string                 `json:"reference_no"`
}

type UpdateQuotationRequest struct {
	ID          string                  `json:"id" binding:"required"`
	Number      *string                 `json:"number"`
	Status      *string                 `json:"status" binding:"omitempty,oneof=draft sent cancelled"`
	Client      *QuotationClientPayload `json:"client"`
	Items       []QuotationItemPayload  `json:"items"`
	Subtotal    *float64                `json:"subtotal"`
	Discount    *float64                `json:"discount"`
	Tax         *float64                `json:"tax"`
	GrandTotal  *float64                `json:"grand_total"`
	DateIssued  *string                 `json:"date_issued"`
	ValidUntil  *string                 `json:"valid_until"`
	ReferenceNo *string                 `json:"reference_no"`
}

// ============ Блог (Blog Posts) ============

type CreatePostRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Slug       string `json:"slug" binding:"required,max=200"`
	Excerpt    string `json:"excerpt" binding:"omitempty,max=500"`
	Content    string `json:"content"`
	StatusCode int    `json:"status_code" binding:"omitempty,gte=0,lte=3"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Slug    *string `json:"slug" binding:"omitempty,max=200"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=500"`
	Content *string `json:"content"`
}

type SetPostStatusRequest struct {
	StatusCode int `json:"status_code" binding:"required,gte=1,lte=3"`
}

type BlogStatsResponse struct {
	Draft     int `json:"draft"`
	Published int `json:"published"`
	InReview  int `json:"in_review"`
}

// ============ Каталог (Products) ============

type ProductListResponse struct {
	Products interface{} `json:"products"`
	Total    int         `json:"total"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Slug        string  `json:"slug" binding:"required,max=150"`
	Category    string  `json:"category" binding:"required,oneof=split cassette standing portable"`
	ShortDesc   string  `json:"short_desc" binding:"omitempty,max=300"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	IsPublished *bool   `json:"is_published"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=150"`
	Slug        *string  `json:"slug" binding:"omitempty,max=150"`
	Category    *string  `json:"category" binding:"omitempty,oneof=split cassette standing portable"`
	ShortDesc   *string  `json:"short_desc" binding:"omitempty,max=300"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	IsPublished *bool    `json:"is_published"`
}

// ============ Пользователи и авторизация ============

type UserResponse struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=editor admin superadmin"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}
