package response

import (
	"github.com/google/uuid"

	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/repository"
)

type ProductVariant struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Color        string    `json:"color"`
	ImageUrl     string    `json:"imageUrl"`
	PriceInCents int32     `json:"priceInCents"`
	Price        string    `json:"price"`
}

type Product struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Variants    []ProductVariant `json:"variants"`
}

// ProductVariantDetail is a variant together with the product it belongs to.
type ProductVariantDetail struct {
	ProductVariant
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
}

func VariantFromRepository(variant repository.ProductVariant) ProductVariant {
	return ProductVariant{
		ID:           variant.ID,
		ProductID:    variant.ProductID,
		Name:         variant.Name,
		Slug:         variant.Slug,
		Color:        variant.Color,
		ImageUrl:     variant.ImageUrl,
		PriceInCents: variant.PriceInCents,
		Price:        cartResponse.FormatBRL(int64(variant.PriceInCents)),
	}
}

// NewCatalog groups variants under their products, keeping the order both were read in.
func NewCatalog(products []repository.Product, variants []repository.ProductVariant) []Product {
	byProduct := make(map[uuid.UUID][]ProductVariant, len(products))
	for _, variant := range variants {
		byProduct[variant.ProductID] = append(byProduct[variant.ProductID], VariantFromRepository(variant))
	}

	catalog := make([]Product, 0, len(products))
	for _, product := range products {
		productVariants := byProduct[product.ID]
		if productVariants == nil {
			productVariants = []ProductVariant{}
		}
		catalog = append(catalog, Product{
			ID:          product.ID,
			Name:        product.Name,
			Slug:        product.Slug,
			Description: product.Description,
			Category:    product.Category,
			Variants:    productVariants,
		})
	}
	return catalog
}

func VariantDetailFromRepository(row repository.FindProductVariantBySlugRow) ProductVariantDetail {
	return ProductVariantDetail{
		ProductVariant: VariantFromRepository(repository.ProductVariant{
			ID:           row.ID,
			ProductID:    row.ProductID,
			Name:         row.Name,
			Slug:         row.Slug,
			Color:        row.Color,
			ImageUrl:     row.ImageUrl,
			PriceInCents: row.PriceInCents,
			CreatedAt:    row.CreatedAt,
		}),
		ProductName:        row.ProductName,
		ProductDescription: row.ProductDescription,
	}
}
