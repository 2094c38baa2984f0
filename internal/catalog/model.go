package catalog

// Catalog is the versioned question catalog document served by GET /questions.
type Catalog struct {
	ID         string     `json:"id"`
	Version    string     `json:"version"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	Categories []Category `json:"categories"`
}

// Category groups related questions.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Question is a single maturity question with its answer scale.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Weight   float64  `json:"weight"`
	Options  []Option `json:"options"`
}

// Option is one point on a question's 1..5 scale.
type Option struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Answers maps question IDs to selected option values.
type Answers map[string]int

// Comments maps question IDs to free-text comments.
type Comments map[string]string

// FindCategory returns the category with the given id.
func (c Catalog) FindCategory(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// OptionText returns the text of the option whose value equals v.
func (q Question) OptionText(v int) (string, bool) {
	for _, o := range q.Options {
		if o.Value == v {
			return o.Text, true
		}
	}
	return "", false
}

// QuestionCount returns the number of questions across all categories.
func (c Catalog) QuestionCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Questions)
	}
	return n
}
