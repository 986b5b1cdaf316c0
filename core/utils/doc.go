// Package utils provides common utility functions for the craftdex application.
// It includes helper functions for lenient type conversion used by the CSV and
// Markdown decoders, and other shared logic that doesn't fit into
// domain-specific packages.
package utils
