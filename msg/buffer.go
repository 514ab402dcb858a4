package msg

import (
	"strconv"

	"github.com/coinbase/chainkit/address"
)

type (
	// Buffer is a fixed-capacity log formatter. Appends write directly into
	// a preallocated buffer and never grow it: anything that does not fit is
	// dropped at the byte boundary and the buffer is marked truncated.
	Buffer struct {
		buf       []byte
		truncated bool
	}

	appendOptions struct {
		precision     uint8
		truncateStart bool
	}

	// Option adjusts how a single value is rendered into a Buffer.
	Option func(*appendOptions)
)

// WithPrecision renders an integer as a decimal scaled down by 10^p, with
// exactly p fraction digits. For example 1500000000 with precision 9 renders
// as "1.500000000".
func WithPrecision(p uint8) Option {
	return func(opts *appendOptions) {
		opts.precision = p
	}
}

// WithTruncateStart keeps the tail of a string instead of the head when it
// does not fit in the remaining capacity.
func WithTruncateStart() Option {
	return func(opts *appendOptions) {
		opts.truncateStart = true
	}
}

// NewBuffer creates a Buffer with the given fixed capacity in bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		buf: make([]byte, 0, capacity),
	}
}

// AppendString appends a string, truncating at the byte boundary if the
// remaining capacity is too small.
func (b *Buffer) AppendString(s string, opts ...Option) *Buffer {
	options := applyOptions(opts)
	b.appendBytes([]byte(s), options.truncateStart)
	return b
}

// AppendUint appends an unsigned integer in decimal form.
func (b *Buffer) AppendUint(v uint64, opts ...Option) *Buffer {
	options := applyOptions(opts)

	var scratch [21]byte
	b.appendBytes(formatUint(scratch[:0], v, options.precision), false)
	return b
}

// AppendInt appends a signed integer in decimal form.
func (b *Buffer) AppendInt(v int64, opts ...Option) *Buffer {
	options := applyOptions(opts)

	var scratch [22]byte
	out := scratch[:0]
	u := uint64(v)
	if v < 0 {
		out = append(out, '-')
		u = uint64(-v)
	}

	b.appendBytes(formatUint(out, u, options.precision), false)
	return b
}

// AppendBool appends "true" or "false".
func (b *Buffer) AppendBool(v bool) *Buffer {
	b.appendBytes([]byte(strconv.FormatBool(v)), false)
	return b
}

// AppendAddress appends the base58 form of an address.
func (b *Buffer) AppendAddress(a address.Address, opts ...Option) *Buffer {
	return b.AppendString(a.String(), opts...)
}

// Truncated reports whether any append was cut short by the capacity.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) Cap() int {
	return cap(b.buf)
}

func (b *Buffer) String() string {
	return string(b.buf)
}

// Reset clears the contents and the truncation flag, keeping the capacity.
func (b *Buffer) Reset() *Buffer {
	b.buf = b.buf[:0]
	b.truncated = false
	return b
}

// Log emits the buffer contents to the message sink.
func (b *Buffer) Log() {
	Log(b.String())
}

func (b *Buffer) appendBytes(data []byte, truncateStart bool) {
	room := cap(b.buf) - len(b.buf)
	if len(data) > room {
		b.truncated = true
		if truncateStart {
			data = data[len(data)-room:]
		} else {
			data = data[:room]
		}
	}

	b.buf = append(b.buf, data...)
}

func formatUint(out []byte, v uint64, precision uint8) []byte {
	if precision == 0 {
		return strconv.AppendUint(out, v, 10)
	}

	// 10^20 overflows uint64; at that point the whole part is always zero.
	whole := uint64(0)
	frac := v
	if precision <= 19 {
		var scale uint64 = 1
		for i := uint8(0); i < precision; i++ {
			scale *= 10
		}

		whole = v / scale
		frac = v % scale
	}

	out = strconv.AppendUint(out, whole, 10)
	out = append(out, '.')

	digits := strconv.FormatUint(frac, 10)
	for i := len(digits); i < int(precision); i++ {
		out = append(out, '0')
	}

	return append(out, digits...)
}
