package social

import (
	"context"

	"github.com/kailas-cloud/socialsearch/internal/domain/search/compiled"
	"github.com/kailas-cloud/socialsearch/internal/hook"
)

// federatedShards keeps shards × tenants under the engine's per-request ceiling.
const federatedShards = 1

// ShardPolicy pins the shard count of new indexes.
type ShardPolicy struct{}

// ShardCount implements hook.ShardCounter.
func (ShardPolicy) ShardCount(int) int { return federatedShards }

// Translator strips the type post-filter the engine cannot evaluate for auxiliary kinds.
type Translator struct{}

// MutateRequest removes every must clause on the type field, keeping the rest in order.
func (Translator) MutateRequest(_ context.Context, req *compiled.Request) {
	if req == nil {
		return
	}
	must := req.PostFilter.Bool.Must
	kept := must[:0:0]
	for _, c := range must {
		if c.References(compiled.TypeField) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == len(must) {
		return
	}
	req.PostFilter.Bool.Must = kept
}

// PermalinkPatcher renders the stored permalink of group and member hits in search listings.
type PermalinkPatcher struct{}

// FilterPermalink implements hook.PermalinkFilter.
func (PermalinkPatcher) FilterPermalink(_ context.Context, rc hook.RenderContext, permalink string) string {
	if !rc.InSearchListing || rc.Item == nil || !rc.Item.Kind().IsAuxiliary() {
		return permalink
	}
	if stored := rc.Item.Permalink(); stored != "" {
		return stored
	}
	return permalink
}
