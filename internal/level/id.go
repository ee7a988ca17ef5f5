package level

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
)

// GenerateLevelID returns a uniformly random uint32 in [1, 2^32-1]. A raw
// draw of exactly 0 is remapped to 1 so that consumers treating 0 as "unset"
// never see a generated id collide with it.
func GenerateLevelID() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("level: random source unavailable: %v", err))
	}

	id := binary.BigEndian.Uint32(buf[:])
	if id == 0 {
		return 1
	}
	return id
}

// IsValidLevelID reports whether v satisfies the uint32 id contract. Zero is
// accepted: the generator never emits it, but externally supplied levels may
// legitimately use it.
func IsValidLevelID(v int64) bool {
	return v >= 0 && v <= math.MaxUint32
}
