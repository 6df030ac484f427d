package cachedRepo

import (
	"github.com/ShounakM04/Blog-Microservices/like_service/likeRepo"
)

// CachedRepo decorates the persistent repo with a per-target count cache.
type CachedRepo interface {
	likeRepo.LikeRepo
}
