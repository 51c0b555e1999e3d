package domain

import "path/filepath"

const (
	// ComponentCacheDirName is the directory holding the ticket component cache.
	ComponentCacheDirName = "jira"

	// LabelCacheDirName is the directory holding the pull request label cache.
	LabelCacheDirName = "labelCache"

	// PullCacheDirName is the directory holding cached GitHub listing responses.
	PullCacheDirName = "githubPullCache"

	// MarkerFileName is the file recording the last successful invalidation pass.
	MarkerFileName = "__last-invalidator-run"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "labelsync.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ComponentCachePath returns the component cache directory under root.
func ComponentCachePath(root string) string {
	return filepath.Join(root, ComponentCacheDirName)
}

// LabelCachePath returns the label cache directory under root.
func LabelCachePath(root string) string {
	return filepath.Join(root, LabelCacheDirName)
}

// PullCachePath returns the GitHub response cache directory under root.
func PullCachePath(root string) string {
	return filepath.Join(root, PullCacheDirName)
}

// MarkerPath returns the invalidation marker file under root.
func MarkerPath(root string) string {
	return filepath.Join(root, MarkerFileName)
}
