package catalog

import "strings"

// Filter is the facet that groups exercise categories.
type Filter string

const (
	FilterMuscles   Filter = "Muscles"
	FilterBodyParts Filter = "Body parts"
	FilterEquipment Filter = "Equipment"
)

// Filters lists the facets in display order.
var Filters = []Filter{FilterMuscles, FilterBodyParts, FilterEquipment}

// QueryKey returns the /exercises query parameter that carries a category of
// this filter, or "" for unknown filters.
func (f Filter) QueryKey() string {
	switch f {
	case FilterMuscles:
		return "muscles"
	case FilterBodyParts:
		return "bodypart"
	case FilterEquipment:
		return "equipment"
	default:
		return ""
	}
}

// Valid reports whether f is one of the known facets.
func (f Filter) Valid() bool {
	return f.QueryKey() != ""
}

// Next returns the facet after f, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return Filters[0]
}

// Category is a named grouping within a filter.
type Category struct {
	Name     string `json:"name"`
	ImageURL string `json:"imgURL"`
	Filter   string `json:"filter"`
}

// Exercise mirrors the /exercises/<id> payload.
type Exercise struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Target         string  `json:"target"`
	BodyPart       string  `json:"bodyPart"`
	Equipment      string  `json:"equipment"`
	Popularity     int     `json:"popularity"`
	BurnedCalories int     `json:"burnedCalories"`
	Time           int     `json:"time"`
	Rating         float64 `json:"rating"`
	Description    string  `json:"description"`
	GifURL         string  `json:"gifUrl"`
}

// CategoryPage is one page of the category list.
type CategoryPage struct {
	Categories []Category
	TotalPages int
}

// ExercisePage is one page of an exercise list.
type ExercisePage struct {
	Exercises  []Exercise
	TotalPages int
}

// ExerciseQuery configures /exercises requests.
type ExerciseQuery struct {
	Filter   Filter
	Category string
	Page     int
	Limit    int
	Keyword  string
}

// Quote mirrors /quote.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// Complete reports whether both fields are present.
func (q Quote) Complete() bool {
	return strings.TrimSpace(q.Quote) != "" && strings.TrimSpace(q.Author) != ""
}

// Rating is the body of a rating submission.
type Rating struct {
	Rate   int    `json:"rate"`
	Email  string `json:"email"`
	Review string `json:"review"`
}

type subscriptionRequest struct {
	Email string `json:"email"`
}

type messagePayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
