package redis

import "fmt"

// Key prefix for all portal-owned data. Clear removes only keys under it,
// so unrelated data in a shared Redis is never clobbered.
const keyPrefix = "megahub"

// profileKey returns the Redis key for a persisted profile field
func profileKey(key string) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, key)
}

// clearPattern matches every key this store owns
func clearPattern() string {
	return fmt.Sprintf("%s:profile:*", keyPrefix)
}
