package shop

const (
	// StoreName is shown in the header and used in the recommendation prompt.
	StoreName = "Pop up Books lb"

	// OwnerPassword is the demo owner secret used when none is configured.
	OwnerPassword = "admin"
)

// DefaultCatalog returns the built-in catalog used before any data exists.
func DefaultCatalog() []Item {
	return []Item{
		{
			ID:          "1",
			Title:       "The Midnight Library",
			Author:      "Matt Haig",
			Description: "Between life and death there is a library, and within that library, the shelves go on forever. Every book provides a chance to try another life you could have lived.",
			Price:       15.99,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/91p5b0UvQ6L.jpg",
			Category:    "Fantasy",
			Note:        "Viking",
			Stock:       50,
		},
		{
			ID:          "2",
			Title:       "Project Hail Mary",
			Author:      "Andy Weir",
			Description: "Ryland Grace is the sole survivor on a desperate, last-chance mission, and if he fails, humanity and the earth itself will perish.",
			Price:       18.50,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/91ttJdJifOL.jpg",
			Category:    "Sci-Fi",
			Note:        "Ballantine Books",
			Stock:       45,
		},
		{
			ID:          "3",
			Title:       "Klara and the Sun",
			Author:      "Kazuo Ishiguro",
			Description: "A novel that looks at our changing world through the eyes of an unforgettable narrator, and one that explores what it means to love.",
			Price:       16.99,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/71xLmdLOQ0L.jpg",
			Category:    "Sci-Fi",
			Note:        "Knopf",
			Stock:       30,
		},
		{
			ID:          "4",
			Title:       "The Four Winds",
			Author:      "Kristin Hannah",
			Description: "An epic novel of love and heroism and hope, set against the backdrop of the Great Depression.",
			Price:       17.00,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/91fABw02aBL.jpg",
			Category:    "Historical Fiction",
			Note:        "St. Martin's Press",
			Stock:       60,
		},
		{
			ID:          "5",
			Title:       "Atomic Habits",
			Author:      "James Clear",
			Description: "An easy and proven way to build good habits and break bad ones. Tiny changes, remarkable results.",
			Price:       14.99,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/81wgcld4wxL.jpg",
			Category:    "Self-Help",
			Note:        "Avery",
			Stock:       100,
		},
		{
			ID:          "6",
			Title:       "The Vanishing Half",
			Author:      "Brit Bennett",
			Description: "A stunning novel about twin sisters, inseparable as children, who ultimately choose to live in two very different worlds.",
			Price:       16.20,
			Image:       "https://images-na.ssl-images-amazon.com/images/I/71eO9+DFFbL.jpg",
			Category:    "Fiction",
			Note:        "Riverhead Books",
			Stock:       40,
		},
	}
}

// DefaultCollections returns the built-in curations.
func DefaultCollections() []Collection {
	return []Collection{
		{ID: "1", Name: "Bestsellers", ItemIDs: []ID{"1", "2", "5", "6"}},
		{ID: "2", Name: "Science Fiction Picks", ItemIDs: []ID{"2", "3"}},
	}
}

// DefaultContent returns the built-in page copy.
func DefaultContent() PageContent {
	return PageContent{
		HeroTitle:    "Find Your Next Great Read",
		HeroSubtitle: "Explore our curated collection of pop-up books and timeless classics. Adventure awaits between the pages.",
		HeroImage:    "https://images.unsplash.com/photo-1532012197267-da84d127e765?auto=format&fit=crop&w=1887&q=80",
		About:        "Pop up Books is a cozy corner for book lovers of all ages. We share our passion for reading by offering a carefully curated selection of books that inspire, entertain, and spark curiosity.",
	}
}
