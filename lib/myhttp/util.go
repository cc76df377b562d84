package myhttp

import (
	"fmt"
	"os"
)

// GuessHostnameWithScheme derives the service's own base URL, used when a
// push subscription must be pointed back at this process.
func GuessHostnameWithScheme() string {
	project := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if project != "" {
		return fmt.Sprintf("https://%s.appspot.com", project)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return fmt.Sprintf("http://localhost:%s", port)
}
