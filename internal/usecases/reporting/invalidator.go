package reporting

import (
	"context"

	"github.com/vfg2006/recovery-crm-api/pkg/log"
)

// CacheInvalidator descarta os relatórios em cache quando o portfólio muda
type CacheInvalidator struct {
	cache Cache
}

func NewCacheInvalidator(cache Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: cache}
}

// Invalidate remove todas as chaves reports:*. Chamado depois do commit, então uma falha só gera aviso
func (i *CacheInvalidator) Invalidate(ctx context.Context) {
	if i == nil || i.cache == nil {
		return
	}

	removed, err := i.cache.DeletePattern(ctx, cacheKeyPrefix+"*")
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao invalidar o cache de relatórios")
		return
	}

	log.ForContext(ctx).WithField("chaves", removed).Debug("Cache de relatórios invalidado")
}
