package index

import (
	"context"

	domdoc "github.com/kailas-cloud/socialsearch/internal/domain/document"
	"github.com/kailas-cloud/socialsearch/internal/domain/kind"
	"github.com/kailas-cloud/socialsearch/internal/domain/social"
)

// ContentReader loads a tenant's native documents.
type ContentReader interface {
	Documents(ctx context.Context, tenantID string) ([]domdoc.Document, error)
}

// SocialReader loads a tenant's social records.
type SocialReader interface {
	Groups(ctx context.Context, tenantID string) ([]social.Group, error)
	Members(ctx context.Context, tenantID string) ([]social.Member, error)
}

// DocumentWriter stores documents in a tenant index.
type DocumentWriter interface {
	PutBatch(ctx context.Context, index string, docs []domdoc.Document) error
	Delete(ctx context.Context, index string, class kind.Class, id string) error
}

// IndexEnsurer creates tenant indexes.
type IndexEnsurer interface {
	Ensure(ctx context.Context, name string, shards int, taxonomies []string, recreate bool) (bool, error)
}
