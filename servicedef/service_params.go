// Package servicedef defines the JSON types of the MediaHub API surface
// that the harness drives. Only the fields the workflow depends on are
// modeled; the server may return more.
package servicedef

// ContentType is the kind of payload a MediaHub database stores.
type ContentType string

const (
	ContentTypeImage ContentType = "image"
	ContentTypeAudio ContentType = "audio"
	ContentTypeFile  ContentType = "file"
)

// CustomField describes one user-defined metadata column of a database.
// The server supports TEXT, INTEGER, REAL, and BOOLEAN types; the workflow
// only uses TEXT.
type CustomField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateUserParams is the body of POST /user.
type CreateUserParams struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
	IsAdmin   bool   `json:"is_admin"`
}

// User is the server's representation of an account, as returned by
// POST /user, PATCH /user, and the elements of GET /users.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
	IsAdmin   bool   `json:"is_admin"`
}

// CreateDatabaseParams is the body of POST /database.
type CreateDatabaseParams struct {
	Name         string        `json:"name"`
	ContentType  ContentType   `json:"content_type"`
	CustomFields []CustomField `json:"custom_fields"`
}

// CreateEntryResponse is the body returned by POST /entry.
type CreateEntryResponse struct {
	ID int64 `json:"id"`
}
