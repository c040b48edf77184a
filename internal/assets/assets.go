package assets

// DefaultStyleName is the embedded print style applied when no custom CSS
// is supplied.
const DefaultStyleName = "notebook"

// defaultLoader is the package-level embedded loader for backward compatibility.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
