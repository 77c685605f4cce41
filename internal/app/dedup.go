package app

import (
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// GroupOffers buckets offers by HotelKey. Hash-keyed accumulation keeps
// the grouping order-independent: any permutation of the input yields
// the same buckets. Offers with a degraded key (missing name or stars)
// still land in a bucket, grouping as singletons when nothing matches.
func GroupOffers(offers []domain.Offer) map[domain.HotelKey][]domain.Offer {
	groups := make(map[domain.HotelKey][]domain.Offer, len(offers))
	for _, o := range offers {
		k := o.Key()
		groups[k] = append(groups[k], o)
	}
	return groups
}
