package output

import "strings"

// unsafeFileChars are replaced in file names; they are separators or reserved on common filesystems.
const unsafeFileChars = `/\:*?"<>|`

// SafeFileName maps an ingredient to a file name stem.
// Separators, control characters and reserved characters become '_',
// and leading/trailing dots and spaces are dropped so the result can never
// name a parent or hidden directory.
func SafeFileName(ingredient string) (string, error) {
	var result strings.Builder
	result.Grow(len(ingredient))

	for _, r := range ingredient {
		switch {
		case r < 0x20, r == 0x7f:
			result.WriteRune('_')
		case strings.ContainsRune(unsafeFileChars, r):
			result.WriteRune('_')
		default:
			result.WriteRune(r)
		}
	}

	name := strings.Trim(result.String(), ". ")
	if name == "" {
		return "", &FileNameError{Ingredient: ingredient}
	}
	return name, nil
}
