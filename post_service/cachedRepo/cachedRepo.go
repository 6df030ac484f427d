package cachedRepo

import (
	"github.com/ShounakM04/Blog-Microservices/post_service/postRepo"
)

// CachedRepo decorates the persistent repo with a post-by-id cache.
type CachedRepo interface {
	postRepo.PostRepo
}
