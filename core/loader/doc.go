// Package loader registers features and mounts them on the fiber router.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// Manager keeps features in registration order. LoadAll skips disabled
// features and stops at the first Load error.
package loader
