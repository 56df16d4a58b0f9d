// Package catalog holds the fixed door catalog presented on the offer step.
// The catalog is compiled-in data; it is never mutated at runtime.
package catalog

// QuadrantLabel identifies one of the four regions of the composite preview
// image ("A" through "D") and doubles as the selection key on the offer step.
type QuadrantLabel string

const (
	LabelA QuadrantLabel = "A"
	LabelB QuadrantLabel = "B"
	LabelC QuadrantLabel = "C"
	LabelD QuadrantLabel = "D"
)

// DoorOption is a pre-priced door style the visitor can select.
type DoorOption struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Material     string        `json:"material"`
	RValue       int           `json:"rValue,omitempty"`
	BasePrice    int           `json:"basePrice"`
	InstallPrice int           `json:"installPrice"`
	ImageLabel   QuadrantLabel `json:"imageLabel"`
	Description  string        `json:"description"`
}

// FullPrice is the door plus installation, before any trade-in credit.
func (o DoorOption) FullPrice() int {
	return o.BasePrice + o.InstallPrice
}

var doorCatalog = []DoorOption{
	{
		ID:           "steel-flush",
		Name:         "Modern Steel",
		Material:     "Insulated Steel",
		RValue:       13,
		BasePrice:    1250,
		InstallPrice: 400,
		ImageLabel:   LabelA,
		Description:  "Sleek, durable, and energy-efficient. A popular choice for modern homes.",
	},
	{
		ID:           "carriage-composite",
		Name:         "Carriage House",
		Material:     "Wood Composite",
		RValue:       10,
		BasePrice:    1590,
		InstallPrice: 450,
		ImageLabel:   LabelB,
		Description:  "Classic charm without the maintenance of real wood. Great curb appeal.",
	},
	{
		ID:           "aluminum-glass",
		Name:         "Full-View Glass",
		Material:     "Aluminum & Glass",
		RValue:       4,
		BasePrice:    2100,
		InstallPrice: 550,
		ImageLabel:   LabelC,
		Description:  "Maximizes natural light and provides a stunning, contemporary look.",
	},
	{
		ID:           "wood-panel",
		Name:         "Raised Panel Wood",
		Material:     "Solid Hemlock",
		BasePrice:    1950,
		InstallPrice: 500,
		ImageLabel:   LabelD,
		Description:  "The timeless beauty and premium feel of natural wood grain.",
	},
}

// Options returns a copy of the catalog so callers cannot mutate it.
func Options() []DoorOption {
	out := make([]DoorOption, len(doorCatalog))
	copy(out, doorCatalog)
	return out
}

// ByLabel looks up a catalog entry by its quadrant label.
func ByLabel(label QuadrantLabel) (DoorOption, bool) {
	for _, option := range doorCatalog {
		if option.ImageLabel == label {
			return option, true
		}
	}
	return DoorOption{}, false
}
