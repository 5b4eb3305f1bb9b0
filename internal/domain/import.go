package domain

import "time"

// Import is one staging generation of person records. Exactly one import is
// active at a time; its generation scopes every person query. Staged
// generations become visible only when activated, so a failed import never
// disturbs the live data set.
type Import struct {
	ID          string     `json:"id"`
	DocumentID  string     `json:"document_id"`
	Generation  string     `json:"generation"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

// CatalogAlias is a persisted normalization alias, replayed onto the built-in
// catalog at boot.
type CatalogAlias struct {
	ID        string    `json:"id"`
	Field     string    `json:"field"`
	Raw       string    `json:"raw"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
