package model

type Product struct {
	DTO
	Name     string  `gorm:"not null;uniqueIndex" validate:"required" json:"name"`
	Price    float64 `gorm:"not null" validate:"min=0" json:"price"`
	Active   bool    `gorm:"default:true" json:"active"`
	ImageUrl *string `json:"imageUrl"`
}

type CreateProductInput struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Price    *float64 `json:"price" validate:"required,min=0"`
	Active   *bool    `json:"active"`
	ImageUrl *string  `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateProductInput struct {
	ID       uint     `json:"id" validate:"required,gt=0"`
	Name     *string  `json:"name" validate:"omitempty,max=120"`
	Price    *float64 `json:"price" validate:"omitempty,min=0"`
	Active   *bool    `json:"active"`
	ImageUrl *string  `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateProductsInput struct {
	Updates []UpdateProductInput `json:"updates" validate:"required,min=1,dive"`
}
