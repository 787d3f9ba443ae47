package domain

// Source is one configured ingestion source: a named URL fetched by
// the extract stage. Disabled sources stay configured but are not
// fetched.
type Source struct {
	Name    string
	URL     string
	Purpose string
	Enabled bool
}
