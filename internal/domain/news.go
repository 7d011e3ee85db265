package domain

// CollectionNews is the storage collection holding news records.
const CollectionNews = "news"

// News is a news card shown on the home and news pages.
type News struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}

func (n News) Kind() string     { return CollectionNews }
func (n News) Identity() string { return n.ID }

func (n News) WithIdentity(id string) News {
	n.ID = id
	return n
}

// Validate requires a title and a description.
func (n News) Validate() error {
	return RequireFields(CollectionNews,
		Field{"title", n.Title},
		Field{"description", n.Description},
	)
}
