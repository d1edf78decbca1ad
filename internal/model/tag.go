package model

// Tag is a named, colored label. Links reference tags by name.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagCount is a Tag annotated with the number of links carrying its name.
type TagCount struct {
	Tag
	Count int `json:"count"`
}
