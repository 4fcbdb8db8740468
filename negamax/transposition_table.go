package negamax

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 16

type tableEntry struct {
	fullHash uint64
	score    float32
	depth    uint8
	flag     uint8
}

func (t tableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// TranspositionTable caches searched positions keyed by zobrist hash. Each
// solver owns its own table, so no locking is needed; parallel workers
// never share one.
type TranspositionTable struct {
	table        []tableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created      uint64
	lookups      uint64
	hits         uint64
	t2collisions uint64
}

// Reset sizes the table from the given fraction of total physical memory
// and clears it. The position board is tiny compared to a crossword grid,
// so the floor here is a modest 2^16 entries.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	t.sizePowerOf2 = int(math.Log2(desiredNElems))
	if t.sizePowerOf2 < 16 {
		t.sizePowerOf2 = 16
	}
	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	if t.table != nil && len(t.table) == numElems {
		clear(t.table)
	} else {
		t.table = make([]tableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")

	t.created = 0
	t.lookups = 0
	t.hits = 0
	t.t2collisions = 0
}

func (t *TranspositionTable) lookup(zval uint64) (tableEntry, bool) {
	t.lookups++
	idx := zval & t.sizeMask
	entry := t.table[idx]
	if entry.fullHash != zval {
		if entry.valid() {
			// An unrelated position is parked in this bucket.
			t.t2collisions++
		}
		return tableEntry{}, false
	}
	t.hits++
	return entry, true
}

func (t *TranspositionTable) store(zval uint64, entry tableEntry) {
	idx := zval & t.sizeMask
	entry.fullHash = zval
	// just overwrite whatever is there.
	t.table[idx] = entry
	t.created++
}
