// Package replay records the intents fed to every simulation tick and
// re-simulates them headless to verify or play back a session.
package replay

import (
	"errors"
	"fmt"
	"iter"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
)

// Version is the journal format version.
const Version = 1

// ErrMismatch is returned when re-simulating a journal does not reproduce the
// recorded final state.
var ErrMismatch = errors.New("replay: final state mismatch")

// Run is a run-length encoded span of identical intents.
type Run struct {
	Bits  uint8  `msgpack:"b"`
	Count uint32 `msgpack:"n"`
}

// Journal is everything needed to reproduce a session tick for tick.
type Journal struct {
	Version    int                   `msgpack:"v"`
	Layout     string                `msgpack:"layout"`
	Config     config.BreakoutConfig `msgpack:"config"`
	Ticks      uint64                `msgpack:"ticks"`
	BlocksLeft int                   `msgpack:"blocks_left"`
	FinalHash  uint64                `msgpack:"hash"`
	Runs       []Run                 `msgpack:"runs"`
}

// Intents yields the recorded intents, one per tick.
func (j Journal) Intents() iter.Seq[core.Intents] {
	return func(yield func(core.Intents) bool) {
		for _, r := range j.Runs {
			in := core.IntentsFromBits(r.Bits)
			for range r.Count {
				if !yield(in) {
					return
				}
			}
		}
	}
}

// Encode serializes the journal with msgpack.
func Encode(j Journal) ([]byte, error) {
	data, err := msgpack.Marshal(&j)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a journal produced by Encode.
func Decode(data []byte) (Journal, error) {
	var j Journal
	if err := msgpack.Unmarshal(data, &j); err != nil {
		return Journal{}, fmt.Errorf("replay: decode: %w", err)
	}
	if j.Version != Version {
		return Journal{}, fmt.Errorf("replay: unsupported journal version %d", j.Version)
	}

	var total uint64
	for _, r := range j.Runs {
		total += uint64(r.Count)
	}
	if total != j.Ticks {
		return Journal{}, fmt.Errorf("replay: journal holds %d ticks of input, header says %d", total, j.Ticks)
	}
	return j, nil
}
