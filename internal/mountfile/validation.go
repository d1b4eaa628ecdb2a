package mountfile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags, then rules spanning several entries.
func Validate(f *File) error {
	if err := validate.Struct(f); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(f)
}

// validateCustomRules rejects the same directory mounted twice under one prefix.
// Repeating a prefix with another root is how overlays are configured.
func validateCustomRules(f *File) error {
	type key struct{ prefix, root string }
	seen := make(map[key]int, len(f.Mounts))
	for i, m := range f.Mounts {
		k := key{m.Prefix, filepath.Clean(m.Root)}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("mounts[%d]: duplicates mounts[%d] (prefix %q, root %q)", i, j, m.Prefix, m.Root)
		}
		seen[k] = i
	}
	return nil
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
