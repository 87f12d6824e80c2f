package tangos

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/adam-broussard/SoundNebula/catalog"
)

// propertyValue is the raw content of one haloproperties row. Exactly one of
// the three columns is expected to be set.
type propertyValue struct {
	f   sql.NullFloat64
	i   sql.NullInt64
	arr []byte
}

func (v *propertyValue) decode(name string) ([]float64, error) {
	switch {
	case v.arr != nil:
		return decodeArray(name, v.arr)
	case v.f.Valid:
		return []float64{v.f.Float64}, nil
	case v.i.Valid:
		return []float64{float64(v.i.Int64)}, nil
	}
	return nil, fmt.Errorf("%w: %s has no value", catalog.ErrBadProperty, name)
}

// decodeArray reads a data_array blob as packed little-endian float64s.
// Blobs carrying a pickle protocol header are rejected rather than decoded
// as floats.
func decodeArray(name string, b []byte) ([]float64, error) {
	if isPickle(b) {
		return nil, fmt.Errorf("%w: %s array is pickled, not packed float64",
			catalog.ErrBadProperty, name)
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("%w: %s array is %d bytes long",
			catalog.ErrBadProperty, name, len(b))
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return out, nil
}

// isPickle reports whether b starts with a pickle PROTO opcode (protocols 2
// through 5) and ends with the STOP opcode.
func isPickle(b []byte) bool {
	return len(b) >= 3 && b[0] == 0x80 && b[1] >= 2 && b[1] <= 5 &&
		b[len(b)-1] == '.'
}
