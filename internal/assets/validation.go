package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that are empty or that contain path
// separators or dots, so a name can never leave its asset directory or
// change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
