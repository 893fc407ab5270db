package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto trazable.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=60"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure    string          `json:"unit_measure" validate:"omitempty,max=20"`
	TrackingType   string          `json:"tracking_type" validate:"omitempty,oneof=batch serial none"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Price          decimal.Decimal `json:"price"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0"`
	Category       string          `json:"category" validate:"omitempty,max=40"`
}

// UpdateProductRequest entrada para actualización parcial (punteros = opcional).
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	UnitMeasure    *string          `json:"unit_measure"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	Price          *decimal.Decimal `json:"price"`
	WarrantyMonths *int             `json:"warranty_months"`
	Category       *string          `json:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	UnitMeasure    string          `json:"unit_measure"`
	TrackingType   string          `json:"tracking_type"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Price          decimal.Decimal `json:"price"`
	WarrantyMonths int             `json:"warranty_months"`
	Category       string          `json:"category"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
