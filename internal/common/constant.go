package common

// Storage keys for the persisted state layout. Each key holds one
// serialized structure in the key-value store.
const (
	KeyAuth   = "ideaflow_auth"  // current session identity
	KeyUsers  = "ideaflow_users" // registered-user collection
	KeyCMS    = "ideaflow_cms"   // announcement collection
	KeyIdeas  = "ideaflow_ideas" // full idea collection
	KeyIconGP = "mobile_icon_gp" // Google Play asset slot
	KeyIconAS = "mobile_icon_as" // App Store asset slot

	// KeySchema records the layout version of all of the above.
	KeySchema = "ideaflow_schema"
)

// SchemaVersion is the current persisted-layout version. Opening a store
// written by a newer layout fails with ErrSchemaVersion instead of guessing.
const SchemaVersion = "1"
