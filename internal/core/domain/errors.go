package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheCreateFailed is returned when a cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheWriteFailed is returned when a cache record cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write cache record")

	// ErrCacheMarshalFailed is returned when a cache record cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache record")

	// ErrCacheCorrupt is reported (and absorbed) when a cache record cannot be decoded.
	ErrCacheCorrupt = zerr.New("corrupt cache record")

	// ErrMarkerReadFailed is returned when the invalidation marker cannot be read or parsed.
	ErrMarkerReadFailed = zerr.New("failed to read invalidation marker")

	// ErrMarkerWriteFailed is returned when the invalidation marker cannot be written.
	ErrMarkerWriteFailed = zerr.New("failed to write invalidation marker")

	// ErrRemoteFailed is returned when a remote read failed after exhausting retries.
	ErrRemoteFailed = zerr.New("remote request failed")

	// ErrRemoteQueryFailed is returned when a remote search query fails.
	ErrRemoteQueryFailed = zerr.New("remote query failed")

	// ErrAuthFailed is returned when the remote rejects the configured credentials.
	ErrAuthFailed = zerr.New("credentials rejected")

	// ErrLabelWriteFailed is returned when labels cannot be added to or removed from a pull request.
	ErrLabelWriteFailed = zerr.New("failed to update pull request labels")

	// ErrLabelResolveFailed is returned when a label cannot be found or created.
	ErrLabelResolveFailed = zerr.New("failed to get or create label")

	// ErrListPullRequestsFailed is returned when pull requests cannot be enumerated.
	ErrListPullRequestsFailed = zerr.New("failed to list pull requests")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the effective configuration is incomplete or malformed.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrCleanFailed is returned when a cache directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean cache")
)
