// File: utils/constants.go
package utils

import "time"

// RestaurantCachePrefix is the prefix used for Redis restaurant profile cache keys.
const RestaurantCachePrefix = "restaurant:profile:"

// RestaurantCacheTTL is the time-to-live for cached restaurant profiles.
const RestaurantCacheTTL = time.Hour
