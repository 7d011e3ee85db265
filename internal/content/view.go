package content

import (
	"sort"
	"strings"

	"github.com/MrSnakeDoc/pitch/internal/domain"
)

// VideoView is a video with its texts resolved for one language.
type VideoView struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Date        string `json:"date"`
}

// LocalizeVideos resolves every video for lang, falling back to English.
func LocalizeVideos(videos []domain.Video, lang string) []VideoView {
	out := make([]VideoView, 0, len(videos))
	for _, v := range videos {
		out = append(out, VideoView{
			ID:          v.ID,
			Src:         v.Src,
			Thumbnail:   v.Thumbnail,
			Title:       v.Title.In(lang),
			Description: v.Description.In(lang),
			Link:        v.Link,
			Date:        v.Date,
		})
	}
	return out
}

// SortVideosByDate orders videos newest first. Dates are ISO (YYYY-MM-DD)
// so string order is date order; undated videos go last.
func SortVideosByDate(videos []domain.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i].Date, videos[j].Date
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return a > b
	})
}

// FilterByText keeps items whose text contains q, case-insensitively.
func FilterByText[R any](items []R, q string, text func(R) string) []R {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]R, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(text(it)), q) {
			out = append(out, it)
		}
	}
	return out
}

// Limit truncates items to n. n <= 0 means no limit.
func Limit[R any](items []R, n int) []R {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
