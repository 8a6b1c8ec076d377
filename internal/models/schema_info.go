package models

// SchemaInfoDB is the singleton record describing the schema version.
type SchemaInfoDB struct {
	Version int `json:"version" db:"version"`
}
