package entity

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        PublicUser `json:"user"`
}

// PublicUser - пользователь без хэша пароля для ответов API
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type CreateCategoryRequest struct {
	Name                    string        `json:"name" validate:"required,min=2,max=100"`
	NameTranslations        *Translations `json:"name_translations"`
	Description             string        `json:"description" validate:"max=2000"`
	DescriptionTranslations *Translations `json:"description_translations"`
	Color                   string        `json:"color" validate:"max=20"`
	IsActive                *bool         `json:"is_active"`
}

// UpdateCategoryRequest - частичное обновление: заполненные поля
// перезаписывают соответствующие поля сущности
type UpdateCategoryRequest struct {
	Name                    *string       `json:"name" validate:"omitempty,min=2,max=100"`
	NameTranslations        *Translations `json:"name_translations"`
	Description             *string       `json:"description" validate:"omitempty,max=2000"`
	DescriptionTranslations *Translations `json:"description_translations"`
	Color                   *string       `json:"color" validate:"omitempty,max=20"`
	IsActive                *bool         `json:"is_active"`
}

type CreateProductRequest struct {
	Name                          string             `json:"name" validate:"required,min=2,max=200"`
	NameTranslations              *Translations      `json:"name_translations"`
	ShortDescription              string             `json:"short_description" validate:"max=2000"`
	ShortDescriptionTranslations  *Translations      `json:"short_description_translations"`
	Description                   string             `json:"description"`
	DescriptionTranslations       *Translations      `json:"description_translations"`
	DescriptionBlocks             DescriptionBlocks  `json:"description_blocks"`
	DescriptionBlocksTranslations *BlockTranslations `json:"description_blocks_translations"`
	Price                         float64            `json:"price" validate:"gte=0"`
	ImageURL                      string             `json:"image_url" validate:"omitempty,url"`
	IsActive                      *bool              `json:"is_active"`
	CategoryID                    *uuid.UUID         `json:"category_id"`
	CategoryIDs                   []uuid.UUID        `json:"category_ids"`
}

// UpdateProductRequest - частичное обновление товара.
// CategoryIDs, если передан, заменяет прежние связи many-to-many целиком.
type UpdateProductRequest struct {
	Name                          *string            `json:"name" validate:"omitempty,min=2,max=200"`
	NameTranslations              *Translations      `json:"name_translations"`
	ShortDescription              *string            `json:"short_description" validate:"omitempty,max=2000"`
	ShortDescriptionTranslations  *Translations      `json:"short_description_translations"`
	Description                   *string            `json:"description"`
	DescriptionTranslations       *Translations      `json:"description_translations"`
	DescriptionBlocks             *DescriptionBlocks `json:"description_blocks"`
	DescriptionBlocksTranslations *BlockTranslations `json:"description_blocks_translations"`
	Price                         *float64           `json:"price" validate:"omitempty,gte=0"`
	ImageURL                      *string            `json:"image_url" validate:"omitempty,url"`
	IsActive                      *bool              `json:"is_active"`
	CategoryID                    *uuid.UUID         `json:"category_id"`
	CategoryIDs                   []uuid.UUID        `json:"category_ids"`
}

// CreateOrderRequest принимает объединение полей персональной заявки
// и оформления корзины; форма различается полем order_type
type CreateOrderRequest struct {
	ProjectName      string        `json:"project_name" validate:"max=255"`
	Name             string        `json:"name" validate:"max=255"`
	ShortDescription string        `json:"short_description" validate:"max=5000"`
	TechnicalSpec    string        `json:"technical_spec" validate:"max=20000"`
	Timeline         string        `json:"timeline" validate:"max=255"`
	Message          string        `json:"message" validate:"max=5000"`
	Email            string        `json:"email" validate:"omitempty,email"`
	Telegram         string        `json:"telegram" validate:"required,min=2,max=255"`
	PromoCode        string        `json:"promo_code" validate:"max=100"`
	TotalPrice       float64       `json:"total_price" validate:"gte=0"`
	Products         OrderProducts `json:"products"`
	OrderType        OrderType     `json:"order_type" validate:"required,oneof=personal available"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// APIResponse - единый envelope всех ответов API.
// HTTP статус остаётся основным сигналом успеха, envelope несёт детали.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}
