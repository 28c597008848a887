// Package loader decodes the compact binary maze wire format (spec §6.1)
// into a freshly allocated cellstore.Store, and provides the inverse
// encoder so a Store (or any geometry.Grid) can be serialized back to the
// same format — useful for golden-file tests and for round-tripping a maze
// a solver just ran against.
package loader

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/arcwalk/mazewalk/cellstore"
	"github.com/arcwalk/mazewalk/geometry"
)

// ErrInvalidInput is returned for any malformed maze blob: a short header,
// non-positive dimensions, or a body truncated before every cell has been
// populated (spec §7).
var ErrInvalidInput = errors.New("loader: invalid maze input")

// header mirrors the three little-endian int32 fields at the start of the
// wire format. Solvable is read but never consulted.
type header struct {
	Width, Height, Solvable int32
}

// LoadOption configures Load, mirroring the WithXxx pattern used by the
// solver constructors.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger zerolog.Logger
}

// WithLogger installs a structured logger that records the dimensions of
// each decoded maze and the reason for any rejected input.
func WithLogger(l zerolog.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// Load decodes a maze blob from r into a new cellstore.Store. Only
// EAST_WALL and SOUTH_WALL are populated; all other bits start clear.
func Load(r io.Reader, opts ...LoadOption) (*cellstore.Store, error) {
	o := loadOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		o.logger.Debug().Err(err).Msg("loader: short or malformed header")
		return nil, ErrInvalidInput
	}
	if h.Width <= 0 || h.Height <= 0 {
		o.logger.Debug().Int32("width", h.Width).Int32("height", h.Height).Msg("loader: non-positive dimensions")
		return nil, ErrInvalidInput
	}

	store, err := cellstore.New(int(h.Width), int(h.Height))
	if err != nil {
		o.logger.Debug().Err(err).Msg("loader: cellstore rejected decoded dimensions")
		return nil, ErrInvalidInput
	}
	o.logger.Debug().Int32("width", h.Width).Int32("height", h.Height).Msg("loader: decoding maze")

	wordsPerRow := (int(h.Width) + 15) / 16
	word := make([]byte, 4)
	for row := 0; row < int(h.Height); row++ {
		col := 0
		for w := 0; w < wordsPerRow; w++ {
			if _, err := io.ReadFull(r, word); err != nil {
				o.logger.Debug().Err(err).Int("row", row).Msg("loader: body truncated before every cell was read")
				return nil, ErrInvalidInput
			}
			bits := binary.LittleEndian.Uint32(word)
			for i := 0; i < 16 && col < int(h.Width); i++ {
				cellBits := (bits >> (uint(i) * 2)) & 0x3
				p := geometry.Position{Row: row, Col: col}
				if cellBits&0x1 != 0 {
					store.SetEastWall(p)
				}
				if cellBits&0x2 != 0 {
					store.SetSouthWall(p)
				}
				col++
			}
		}
	}

	return store, nil
}

// Encode writes store to w in the same wire format Load reads, with
// Solvable always written as 1. It is the dual operation, used by tests to
// build fixture mazes.
func Encode(w io.Writer, store *cellstore.Store) error {
	h := header{Width: int32(store.Width()), Height: int32(store.Height()), Solvable: 1}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	wordsPerRow := (store.Width() + 15) / 16
	for row := 0; row < store.Height(); row++ {
		col := 0
		for wd := 0; wd < wordsPerRow; wd++ {
			var bits uint32
			for i := 0; i < 16 && col < store.Width(); i++ {
				p := geometry.Position{Row: row, Col: col}
				var cellBits uint32
				if store.HasEastWall(p) {
					cellBits |= 0x1
				}
				if store.HasSouthWall(p) {
					cellBits |= 0x2
				}
				bits |= cellBits << (uint(i) * 2)
				col++
			}
			word := make([]byte, 4)
			binary.LittleEndian.PutUint32(word, bits)
			if _, err := w.Write(word); err != nil {
				return err
			}
		}
	}
	return nil
}
