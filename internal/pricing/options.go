package pricing

// Suggested values for the market context. Free text is accepted as well.
var (
	BusinessTypes = []string{
		"Retail / Toko",
		"F&B (Makanan & Minuman)",
		"Jasa Professional",
		"Travel & Pariwisata",
		"Produk Digital",
		"Kerajinan / Manufaktur",
	}

	AudienceTypes = []string{
		"Budget / Ekonomis",
		"Menengah / Standar",
		"Atas / Luxury",
		"Wisatawan Domestik",
		"Wisatawan Mancanegara",
		"Korporat / B2B",
	}

	Seasons = []string{
		"Low Season",
		"Normal Season",
		"High Season / Liburan",
		"Peak Season",
	}

	Qualities = []string{
		"Ekonomis",
		"Standar",
		"Premium",
		"Luxury",
	}
)

// ContextOptions groups the suggestion lists served to the UI
type ContextOptions struct {
	BusinessTypes []string `json:"businessTypes"`
	AudienceTypes []string `json:"audienceTypes"`
	Seasons       []string `json:"seasons"`
	Qualities     []string `json:"qualities"`
}

// DefaultContextOptions returns copies of the built-in suggestion lists
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		BusinessTypes: append([]string(nil), BusinessTypes...),
		AudienceTypes: append([]string(nil), AudienceTypes...),
		Seasons:       append([]string(nil), Seasons...),
		Qualities:     append([]string(nil), Qualities...),
	}
}

// DefaultContext is the market context a new workspace starts with
func DefaultContext() AIContextData {
	return AIContextData{
		BusinessType:   BusinessTypes[0],
		Location:       "",
		TargetAudience: AudienceTypes[0],
		Season:         Seasons[1],
		Quality:        Qualities[1],
	}
}

// DefaultProduct is an empty product with quantity 1
func DefaultProduct() ProductData {
	return ProductData{
		Name:         "",
		SellingPrice: 0,
		Quantity:     1,
		Costs:        []CostItem{},
	}
}
