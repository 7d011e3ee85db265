package domain

// CollectionVideos is the storage collection holding video records.
const CollectionVideos = "videos"

// Video is a club video with translated title and description.
type Video struct {
	ID          string        `json:"id,omitempty"`
	Src         string        `json:"src"`
	Thumbnail   string        `json:"thumbnail"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Link        string        `json:"link"`
	Date        string        `json:"date"`
}

func (v Video) Kind() string     { return CollectionVideos }
func (v Video) Identity() string { return v.ID }

func (v Video) WithIdentity(id string) Video {
	v.ID = id
	return v
}

// Validate requires a media source and a thumbnail.
func (v Video) Validate() error {
	return RequireFields(CollectionVideos,
		Field{"src", v.Src},
		Field{"thumbnail", v.Thumbnail},
	)
}
