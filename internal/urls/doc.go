// Package urls provides centralized constants for the external pages the CLI
// points users to.
//
// Usage:
//
//	import "github.com/muurk/uplink/internal/urls"
//
//	fmt.Printf("Create a key at: %s\n", urls.GeminiAPIKeys)
package urls
