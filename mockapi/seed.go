package mockapi

import "github.com/Jathol7/oz-baby-toys-store/models"

// seed loads the demo catalog. Callers hold no lock; the repo is fresh.
func (r *memoryRepo) seed() {
	cats := []struct {
		name, slug string
	}{
		{"Soft Toys", "soft-toys"},
		{"Educational", "educational"},
		{"Puzzles", "puzzles"},
		{"Outdoor", "outdoor"},
	}
	for _, c := range cats {
		cat := models.Category{
			Name:     c.name,
			Slug:     c.slug,
			IsActive: true,
			SubCategories: []models.SubCategory{
				{Name: c.name, Slug: c.slug},
			},
		}
		if err := r.CreateCategory(&cat); err != nil {
			panic("seed: " + err.Error())
		}
	}

	products := []models.Product{
		{Name: "Teddy Bear", Slug: "teddy-bear", Price: 25.99, SubCategoryID: 1, Stock: 10,
			Image: "https://picsum.photos/seed/teddy/400/400", Description: "A cuddly soft bear."},
		{Name: "Abacus", Slug: "abacus", Price: 15.50, SubCategoryID: 2, Stock: 5,
			Image: "https://picsum.photos/seed/abacus/400/400", Description: "Wooden math tool."},
		{Name: "Rainbow Stacker", Slug: "rainbow-stacker", Price: 19.99, SubCategoryID: 2, Stock: 8,
			Description: "Stacking rings in rainbow colors."},
		{Name: "Farm Animals Puzzle", Slug: "farm-animals-puzzle", Price: 12.75, SubCategoryID: 3, Stock: 14,
			Description: "Chunky wooden puzzle with six farm animals."},
		{Name: "Garden Swing", Slug: "garden-swing", Price: 49.00, SubCategoryID: 4, Stock: 3,
			Description: "Toddler swing seat for the backyard."},
	}
	for i := range products {
		if err := r.CreateProduct(&products[i]); err != nil {
			panic("seed: " + err.Error())
		}
	}
}
