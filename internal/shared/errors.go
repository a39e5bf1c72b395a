package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input errors; these abort the whole run
	ErrDescriptorNotFound = fmt.Errorf("descriptor not found")
	ErrNoPlatforms        = fmt.Errorf("no platform descriptors found")
	ErrParseFailed        = fmt.Errorf("descriptor parse failed")

	// Relationship resolution errors; these skip the folder tree only
	ErrRootCategoryNotFound = fmt.Errorf("root category not found")
	ErrCycleDetected        = fmt.Errorf("relationship cycle detected")

	// Media errors; recovered per-asset
	ErrUnreadableImage = fmt.Errorf("unreadable image")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
