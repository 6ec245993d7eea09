package recall

import (
	"context"
	"encoding/json"

	"github.com/rushteam/feedkit/core"
)

// Trending 是热门召回源。每次调用必须至少请求一次：
// 它既参与最终混排比例，也是过滤淘汰过多时的回填池。
//
// 可选地挂一个 Store 做快照缓存（CacheTTL 秒），避免高频调用打爆内容源；
// TTL 为 0 时不启用缓存，每次都直连内容源（默认行为）。
type Trending struct {
	Client core.ContentSource

	Store    core.Store
	CacheKey string // 默认 "feed:trending"
	CacheTTL int    // 秒；0 = 不缓存
}

func (r *Trending) Name() string { return SourceTrending }

func (r *Trending) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	videos, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(videos))
	for _, v := range videos {
		if v == nil {
			continue
		}
		out = append(out, core.NewItem(v))
	}
	return out, nil
}

func (r *Trending) fetch(ctx context.Context) ([]*core.Video, error) {
	if r.Client == nil {
		return nil, nil
	}

	key := r.CacheKey
	if key == "" {
		key = "feed:trending"
	}

	if r.Store != nil && r.CacheTTL > 0 {
		if data, err := r.Store.Get(ctx, key); err == nil {
			var cached []*core.Video
			if json.Unmarshal(data, &cached) == nil && len(cached) > 0 {
				return cached, nil
			}
		}
		// 缓存未命中/损坏都走直连
	}

	videos, err := r.Client.Trending(ctx)
	if err != nil {
		return nil, err
	}

	if r.Store != nil && r.CacheTTL > 0 && len(videos) > 0 {
		if data, err := json.Marshal(videos); err == nil {
			// 回写失败不影响本次结果
			_ = r.Store.Set(ctx, key, data, r.CacheTTL)
		}
	}
	return videos, nil
}
