package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Translations содержит переводы текстового поля по локалям.
// Поле с переводами всегда имеет и непереведённое базовое значение.
type Translations struct {
	EN string `json:"en,omitempty"`
	RU string `json:"ru,omitempty"`
	UK string `json:"uk,omitempty"`
}

// Value сериализует переводы в jsonb для PostgreSQL
func (t Translations) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan десериализует jsonb колонку в структуру переводов
func (t *Translations) Scan(value interface{}) error {
	if value == nil {
		*t = Translations{}
		return nil
	}
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, t)
}

// DescriptionBlock - один блок развёрнутого описания товара
type DescriptionBlock struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DescriptionBlocks хранится в jsonb колонке целиком
type DescriptionBlocks []DescriptionBlock

func (d DescriptionBlocks) Value() (driver.Value, error) {
	if d == nil {
		d = DescriptionBlocks{}
	}
	return json.Marshal(d)
}

func (d *DescriptionBlocks) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, d)
}

// BlockTranslations - переведённые массивы блоков описания по локалям
type BlockTranslations struct {
	EN DescriptionBlocks `json:"en,omitempty"`
	RU DescriptionBlocks `json:"ru,omitempty"`
	UK DescriptionBlocks `json:"uk,omitempty"`
}

func (t BlockTranslations) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *BlockTranslations) Scan(value interface{}) error {
	if value == nil {
		*t = BlockTranslations{}
		return nil
	}
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, t)
}

// User представляет администратора или пользователя панели.
// Создаётся скриптом cmd/createadmin, через API меняется только пароль.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Category представляет категорию каталога
type Category struct {
	ID                      uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name                    string       `json:"name" gorm:"type:varchar(100);not null"`
	NameTranslations        Translations `json:"name_translations" gorm:"type:jsonb"`
	Description             string       `json:"description" gorm:"type:text"`
	DescriptionTranslations Translations `json:"description_translations" gorm:"type:jsonb"`
	Color                   string       `json:"color" gorm:"type:varchar(20)"`
	IsActive                bool         `json:"is_active" gorm:"not null;default:true"`
	CreatedAt               time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	Products                []Product    `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар каталога.
// is_active=false скрывает товар из публичных выдач, но не из админских.
type Product struct {
	ID                      uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name                    string            `json:"name" gorm:"type:varchar(200);not null"`
	NameTranslations        Translations      `json:"name_translations" gorm:"type:jsonb"`
	ShortDescription        string            `json:"short_description" gorm:"type:text"`
	ShortDescriptionTranslations Translations `json:"short_description_translations" gorm:"type:jsonb"`
	Description             string            `json:"description" gorm:"type:text"`
	DescriptionTranslations Translations      `json:"description_translations" gorm:"type:jsonb"`
	DescriptionBlocks       DescriptionBlocks `json:"description_blocks" gorm:"type:jsonb"`
	DescriptionBlocksTranslations BlockTranslations `json:"description_blocks_translations" gorm:"type:jsonb"`
	Price                   float64           `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	ImageURL                string            `json:"image_url" gorm:"type:text"`
	IsActive                bool              `json:"is_active" gorm:"not null;default:true"`
	CategoryID              *uuid.UUID        `json:"category_id" gorm:"type:uuid"`
	Categories              []Category        `json:"categories" gorm:"many2many:product_categories"`
	CreatedAt               time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// OrderType различает персональную заявку и заказ из корзины
type OrderType string

const (
	OrderTypePersonal  OrderType = "personal"
	OrderTypeAvailable OrderType = "available"
)

// OrderStatus представляет статусы заказа.
// Переходы не ограничены: админ может установить любой из четырёх статусов.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderProduct - снимок позиции корзины на момент оформления заказа
type OrderProduct struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// OrderProducts хранится в jsonb колонке целиком
type OrderProducts []OrderProduct

func (p OrderProducts) Value() (driver.Value, error) {
	if p == nil {
		p = OrderProducts{}
	}
	return json.Marshal(p)
}

func (p *OrderProducts) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	b, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, p)
}

// Order представляет заказ: либо персональную заявку на проект,
// либо оформление корзины. Поля обеих форм живут в одной строке,
// незаполненные остаются пустыми строками.
type Order struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectName      string        `json:"project_name" gorm:"type:varchar(255)"`
	Name             string        `json:"name" gorm:"type:varchar(255)"`
	ShortDescription string        `json:"short_description" gorm:"type:text"`
	TechnicalSpec    string        `json:"technical_spec" gorm:"type:text"`
	Timeline         string        `json:"timeline" gorm:"type:varchar(255)"`
	Message          string        `json:"message" gorm:"type:text"`
	Email            string        `json:"email" gorm:"type:varchar(255)"`
	Telegram         string        `json:"telegram" gorm:"type:varchar(255);not null"`
	PromoCode        string        `json:"promo_code" gorm:"type:varchar(100)"`
	TotalPrice       float64       `json:"total_price" gorm:"type:decimal(10,2)"`
	Products         OrderProducts `json:"products" gorm:"type:jsonb"`
	OrderType        OrderType     `json:"order_type" gorm:"type:varchar(50);not null;default:'personal'"`
	Status           OrderStatus   `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderCreatedEvent - envelope исходящего уведомления о новом заказе
type OrderCreatedEvent struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Order     *Order    `json:"order"`
}

// PendingDigestEvent - envelope ежедневного дайджеста ожидающих заказов
type PendingDigestEvent struct {
	Event        string    `json:"event"`
	Timestamp    time.Time `json:"timestamp"`
	PendingCount int       `json:"pending_count"`
	Orders       []Order   `json:"orders"`
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
