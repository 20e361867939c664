// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent template lookups. Spawning a multi-member encounter fetches
// the same character and skill rows many times at once; a centralized
// singleflight.Group ensures only one query runs per key while the other
// callers wait for its result.
package dedupe

import "golang.org/x/sync/singleflight"

// CharacterGroup deduplicates character-template lookups keyed by the
// lower-cased template name.
var CharacterGroup singleflight.Group

// SkillGroup deduplicates skill lookups keyed by skill key.
var SkillGroup singleflight.Group
