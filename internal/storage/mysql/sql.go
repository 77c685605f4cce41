package mysql

// Bulk offer save. One row per (provider, provider_id); re-seen offers
// refresh price/date fields.
const insertOffersPrefix = "INSERT INTO offers\n" +
	"  (provider, provider_id, hotel_name, country, resort, stars, beach_line, meal," +
	" price, old_price, currency, start_date, end_date, nights, rating, review_count," +
	" booking_url, images, extras)\nVALUES "

const insertOffersOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  hotel_name   = VALUES(hotel_name),\n" +
	"  country      = VALUES(country),\n" +
	"  resort       = VALUES(resort),\n" +
	"  stars        = VALUES(stars),\n" +
	"  beach_line   = VALUES(beach_line),\n" +
	"  meal         = VALUES(meal),\n" +
	"  price        = VALUES(price),\n" +
	"  old_price    = VALUES(old_price),\n" +
	"  currency     = VALUES(currency),\n" +
	"  start_date   = VALUES(start_date),\n" +
	"  end_date     = VALUES(end_date),\n" +
	"  nights       = VALUES(nights),\n" +
	"  rating       = VALUES(rating),\n" +
	"  review_count = VALUES(review_count),\n" +
	"  booking_url  = VALUES(booking_url),\n" +
	"  images       = VALUES(images),\n" +
	"  extras       = VALUES(extras),\n" +
	"  updated_at   = CURRENT_TIMESTAMP\n"

const selectWeightsSQL = `
SELECT criterion, weight
FROM profile_weights
WHERE user_id = ?
`

const upsertSearchSQL = `
INSERT INTO saved_searches (user_id, spec)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  spec       = VALUES(spec),
  updated_at = CURRENT_TIMESTAMP
`

const listSearchesSQL = `
SELECT id, user_id, spec
FROM saved_searches
ORDER BY updated_at DESC
LIMIT ?
`
