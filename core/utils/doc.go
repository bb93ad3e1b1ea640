// Package utils provides common utility functions for the game-catalog application.
// It includes helpers for coercing loosely typed provider JSON values into Go types
// and other shared logic that doesn't fit into domain-specific packages.
package utils
