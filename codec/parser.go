package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/table"
)

// MaxSize bounds repeat counts and total byte sizes, keeping layouts identical on 32
// and 64-bit hosts.
const MaxSize = math.MaxInt32

// Step is one parsed unit of a format string: a repeat count and the resolved entry.
//
// For string codes Count is the field width in bytes; for every other code it is the
// number of items.
type Step struct {
	Count int
	Entry *table.TypeEntry
}

// Values returns the number of values the step consumes when packing and produces
// when unpacking.
func (s Step) Values() int {
	switch s.Entry.Kind { //nolint:exhaustive
	case table.KindPad:
		return 0
	case table.KindString:
		return 1
	case table.KindPascalString:
		if s.Count != 0 {
			return 1
		}

		return 0
	default:
		return s.Count
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Parse resolves a format string into its table and ordered steps.
//
// An optional leading byte order character selects the table (native when absent).
// Whitespace between steps is ignored; a run of decimal digits sets the repeat count
// of the following type code. A count with no type code after it ends the format.
//
// Returns errs.ErrBadFormatChar for codes the table does not know and
// errs.ErrCountOverflow when a count exceeds MaxSize.
func Parse(s string) (*table.Table, []Step, error) {
	order := format.Native
	i := 0
	if len(s) > 0 && format.IsOrder(s[0]) {
		order = format.Order(s[0])
		i++
	}

	tbl, err := table.Lookup(order)
	if err != nil {
		return nil, nil, err
	}

	steps := make([]Step, 0, len(s)-i)
	for i < len(s) {
		c := s[i]
		i++

		if isSpace(c) {
			continue
		}

		num := 1
		if isDigit(c) {
			num = int(c - '0')
			for i < len(s) && isDigit(s[i]) {
				d := int(s[i] - '0')
				if num > (MaxSize-d)/10 {
					return nil, nil, fmt.Errorf("%w: in format %q", errs.ErrCountOverflow, s)
				}
				num = num*10 + d
				i++
			}

			if i == len(s) {
				break
			}
			c = s[i]
			i++
		}

		entry, err := tbl.Entry(format.Code(c))
		if err != nil {
			return nil, nil, fmt.Errorf("format %q: %w", s, err)
		}

		steps = append(steps, Step{Count: num, Entry: entry})
	}

	return tbl, steps, nil
}

// Layout computes the aligned byte offset of every step, the total byte size and the
// number of values the steps consume.
//
// Alignment only applies to entries with a non-zero Align, which exist in the native
// table alone. Returns errs.ErrSizeOverflow when the size exceeds MaxSize.
func Layout(steps []Step) (offsets []int, size int, count int, err error) {
	offsets = make([]int, len(steps))
	for i, st := range steps {
		size = st.Entry.AlignOffset(size)
		if size > MaxSize || st.Count > (MaxSize-size)/st.Entry.Size {
			return nil, 0, 0, errs.ErrSizeOverflow
		}

		offsets[i] = size
		size += st.Count * st.Entry.Size
		count += st.Values()
	}

	return offsets, size, count, nil
}

// SizeAndCount returns the total byte size and value count of the steps.
func SizeAndCount(steps []Step) (size int, count int, err error) {
	_, size, count, err = Layout(steps)

	return size, count, err
}

// CalcSize returns the number of bytes a format string describes.
func CalcSize(s string) (int, error) {
	_, steps, err := Parse(s)
	if err != nil {
		return 0, err
	}

	size, _, err := SizeAndCount(steps)
	if err != nil {
		return 0, fmt.Errorf("format %q: %w", s, err)
	}

	return size, nil
}
