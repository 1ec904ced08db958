package models

// CategoryStyle is how a client should render a category badge.
type CategoryStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryTransport:     {Icon: "car", Color: "#3b82f6"},
	CategoryFood:          {Icon: "utensils", Color: "#f97316"},
	CategoryEntertainment: {Icon: "film", Color: "#a855f7"},
	CategoryUtilities:     {Icon: "zap", Color: "#eab308"},
	CategoryShopping:      {Icon: "shopping-bag", Color: "#ec4899"},
	CategoryHealthcare:    {Icon: "heart-pulse", Color: "#ef4444"},
	CategoryEducation:     {Icon: "graduation-cap", Color: "#22c55e"},
	CategoryOther:         {Icon: "circle-dollar-sign", Color: "#6b7280"},
}

// Style returns the display style for c; unknown categories render as Otros.
func (c Category) Style() CategoryStyle {
	if style, ok := categoryStyles[c]; ok {
		return style
	}
	return categoryStyles[CategoryOther]
}
