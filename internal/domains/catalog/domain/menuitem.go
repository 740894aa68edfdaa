package domain

import "errors"

// Category buckets menu items for browsing.
type Category string

const (
	CategoryAppetizers Category = "Appetizers"
	CategoryMainCourse Category = "Main Course"
	CategoryDesserts   Category = "Desserts"
	CategoryDrinks     Category = "Drinks"
)

// DefaultImage is used when an item has no photo uploaded yet.
const DefaultImage = "default-food.jpg"

var (
	ErrEmptyName       = errors.New("menu item name is required")
	ErrNegativePrice   = errors.New("menu item price must be greater or equal to zero")
	ErrInvalidCategory = errors.New("unknown menu category")
)

// ParseCategory validates a raw category string against the known buckets.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryAppetizers, CategoryMainCourse, CategoryDesserts, CategoryDrinks:
		return Category(raw), nil
	default:
		return "", ErrInvalidCategory
	}
}

// MenuItem is a dish or drink offered on the storefront. Orders snapshot
// items at placement time, so editing or deleting a menu item never touches
// order history.
type MenuItem struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Category    Category
	ImageURL    string
	Available   bool
}

// NewMenuItem validates and builds a menu item with catalog defaults applied:
// missing image falls back to the placeholder, availability defaults to true.
func NewMenuItem(name, description string, price float64, category Category, imageURL string) (*MenuItem, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if imageURL == "" {
		imageURL = DefaultImage
	}
	return &MenuItem{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		ImageURL:    imageURL,
		Available:   true,
	}, nil
}
