package types

// Category groups channels by concern
type Category string

const (
	CategoryStorage Category = "storage"
	CategorySystem  Category = "system"
)

// Channel represents a method channel definition
type Channel struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Methods     []Method `json:"methods"`
}

// Method represents one operation exposed by a channel
type Method struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a method argument
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// HasMethod reports whether the channel declares the named method
func (c Channel) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}
