package types

// Image references a hosted asset by URL plus the provider-side id used to
// delete it later.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

// Images is the jsonb-serialized list carried by products and categories.
type Images []Image
