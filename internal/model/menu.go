package model

// MenuItem is a single orderable catalog entry. Price is immutable after
// creation; staff only toggle the Available flag.
type MenuItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     Cents  `json:"price"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

const (
	CategoryCoffee = "coffee"
	CategorySnack  = "snack"
)

// Catalog is the full menu, split into the two groups the storefront renders.
type Catalog struct {
	Coffee []MenuItem `json:"coffee"`
	Snacks []MenuItem `json:"snacks"`
}

// Find returns a pointer to the item with the given id, searching both
// groups, or nil if absent.
func (c *Catalog) Find(id string) *MenuItem {
	for i := range c.Coffee {
		if c.Coffee[i].ID == id {
			return &c.Coffee[i]
		}
	}
	for i := range c.Snacks {
		if c.Snacks[i].ID == id {
			return &c.Snacks[i]
		}
	}
	return nil
}

// Empty reports whether the catalog has no items in either group.
func (c *Catalog) Empty() bool {
	return len(c.Coffee) == 0 && len(c.Snacks) == 0
}

// DefaultCatalog is the menu seeded on first start.
func DefaultCatalog() Catalog {
	return Catalog{
		Coffee: []MenuItem{
			{ID: "1", Name: "Classic Espresso", Price: 350, Category: CategoryCoffee, Available: true},
			{ID: "2", Name: "Vintage Cappuccino", Price: 425, Category: CategoryCoffee, Available: true},
			{ID: "3", Name: "Old Fashioned Latte", Price: 450, Category: CategoryCoffee, Available: true},
			{ID: "4", Name: "Retro Americano", Price: 375, Category: CategoryCoffee, Available: true},
			{ID: "5", Name: "Vintage Mocha", Price: 500, Category: CategoryCoffee, Available: true},
			{ID: "6", Name: "Classic Macchiato", Price: 400, Category: CategoryCoffee, Available: true},
		},
		Snacks: []MenuItem{
			{ID: "7", Name: "Vintage Croissant", Price: 250, Category: CategorySnack, Available: true},
			{ID: "8", Name: "Classic Muffin", Price: 300, Category: CategorySnack, Available: true},
			{ID: "9", Name: "Old Time Cookie", Price: 225, Category: CategorySnack, Available: true},
			{ID: "10", Name: "Retro Donut", Price: 275, Category: CategorySnack, Available: true},
			{ID: "11", Name: "Classic Brownie", Price: 350, Category: CategorySnack, Available: true},
			{ID: "12", Name: "Vintage Cake Slice", Price: 450, Category: CategorySnack, Available: true},
		},
	}
}
