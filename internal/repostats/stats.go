package repostats

import (
	"sort"
	"time"
)

// Repository is the subset of a GitHub repository the projects page shows.
type Repository struct {
	Name        string           `json:"name"`
	FullName    string           `json:"full_name"`
	Description string           `json:"description"`
	HTMLURL     string           `json:"html_url"`
	Language    string           `json:"language"`
	Stars       int              `json:"stargazers_count"`
	Forks       int              `json:"forks_count"`
	Fork        bool             `json:"fork"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Languages   map[string]int64 `json:"languages,omitempty"`
}

// Stats is the running total over all fetched repositories.
type Stats struct {
	Repositories int              `json:"repositories"`
	Stars        int              `json:"stars"`
	Forks        int              `json:"forks"`
	Bytes        map[string]int64 `json:"languages"`
	TotalBytes   int64            `json:"total_bytes"`
}

// LanguageShare is one language's part of the total byte count.
type LanguageShare struct {
	Name    string  `json:"name"`
	Bytes   int64   `json:"bytes"`
	Percent float64 `json:"percent"`
}

func (s *Stats) add(r Repository) {
	if s.Bytes == nil {
		s.Bytes = make(map[string]int64)
	}
	s.Repositories++
	s.Stars += r.Stars
	s.Forks += r.Forks
	for lang, n := range r.Languages {
		s.Bytes[lang] += n
		s.TotalBytes += n
	}
}

// Languages returns the languages ordered by byte count, largest first.
func (s Stats) Languages() []LanguageShare {
	out := make([]LanguageShare, 0, len(s.Bytes))
	for name, n := range s.Bytes {
		share := LanguageShare{Name: name, Bytes: n}
		if s.TotalBytes > 0 {
			share.Percent = 100 * float64(n) / float64(s.TotalBytes)
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bytes != out[j].Bytes {
			return out[i].Bytes > out[j].Bytes
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s Stats) clone() Stats {
	c := s
	c.Bytes = make(map[string]int64, len(s.Bytes))
	for k, v := range s.Bytes {
		c.Bytes[k] = v
	}
	return c
}
