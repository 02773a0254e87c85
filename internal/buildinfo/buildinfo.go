package buildinfo

import "fmt"

// set with -ldflags at build time
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// UserAgent is the default user agent sent with every request.
func UserAgent() string {
	return fmt.Sprintf("mangadex-go/%s", Version)
}
