// Package urls provides centralized constants for the remote endpoints and
// listen addresses used throughout the application.
//
// Usage:
//
//	import "github.com/muurk/tmcatcher/internal/urls"
//
//	client := api.NewClientWithURL(urls.DefaultBaseURL)
package urls
