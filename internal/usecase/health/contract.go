package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether an engine index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}

// ExtensionProbe reports whether the social extension's data is installed.
type ExtensionProbe interface {
	Installed(ctx context.Context) (bool, error)
}
