// Package misc keeps build time information.
package misc

// set by the linker
var (
	appName = "lesstheme"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
