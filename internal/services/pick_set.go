package services

import "strings"

const (
	PickSourceActivity = "activity"
	PickSourceLink     = "link"
	googleMapsPinLabel = "Google Maps Pin"
)

type Pick struct {
	Label   string `json:"label"`
	MapLink string `json:"map_link,omitempty"`
	Source  string `json:"source"`
}

// PickKey identifies a pick; two picks with the same label and link are the same pick.
type PickKey struct {
	Label   string
	MapLink string
}

func (p Pick) Key() PickKey {
	return PickKey{Label: p.Label, MapLink: p.MapLink}
}

// PickSet is an insertion-ordered set of picks. It is not safe for concurrent use.
type PickSet struct {
	order []PickKey
	items map[PickKey]Pick
}

func NewPickSet() *PickSet {
	return &PickSet{items: make(map[PickKey]Pick)}
}

// NormalizePick fills the label of a pasted link and the source tag. It reports
// false when there is neither a label nor a link.
func NormalizePick(p Pick) (Pick, bool) {
	p.Label = strings.TrimSpace(p.Label)
	p.MapLink = strings.TrimSpace(p.MapLink)
	if p.Label == "" && p.MapLink == "" {
		return p, false
	}
	if p.Label == "" {
		if strings.Contains(p.MapLink, "google.com/maps") {
			p.Label = googleMapsPinLabel
		} else {
			p.Label = p.MapLink
		}
		if p.Source == "" {
			p.Source = PickSourceLink
		}
	}
	if p.Source == "" {
		p.Source = PickSourceActivity
	}
	return p, true
}

// Add inserts p and reports whether it was new. Adding an existing pick keeps its
// original position.
func (s *PickSet) Add(p Pick) bool {
	k := p.Key()
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = p
	s.order = append(s.order, k)
	return true
}

// Remove deletes the pick with key k and reports whether it was present.
func (s *PickSet) Remove(k PickKey) bool {
	if _, ok := s.items[k]; !ok {
		return false
	}
	delete(s.items, k)
	for i, existing := range s.order {
		if existing == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *PickSet) Len() int { return len(s.order) }

// List returns a snapshot in insertion order.
func (s *PickSet) List() []Pick {
	out := make([]Pick, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k])
	}
	return out
}
