package pool

import "sync"

// Default sizes of the ByteBuffers obtained from the package pools.
const (
	ScratchBufferDefaultSize  = 512             // 512B
	ScratchBufferMaxThreshold = 1024 * 64       // 64KiB
	FrameBufferDefaultSize    = 1024 * 16       // 16KiB
	FrameBufferMaxThreshold   = 1024 * 1024 * 4 // 4MiB

	growthDefaultSize = FrameBufferDefaultSize
)

// ByteBuffer is a growable byte slice recycled through a ByteBufferPool. The packer
// stages record images in scratch buffers and the frame encoder accumulates payloads
// in frame buffers.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
//
// Parameters:
//   - defaultSize: Initial capacity in bytes
//
// Returns:
//   - *ByteBuffer: An empty buffer
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data, growing the buffer if necessary.
//
// Parameters:
//   - data: Bytes to append
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// SetLength sets the length of the buffer to n.
//
// Parameters:
//   - n: New length, between 0 and Cap()
//
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity. The new bytes
// are not cleared.
//
// Parameters:
//   - n: Number of bytes to add
//
// Returns:
//   - bool: false if the capacity is insufficient, leaving the buffer unchanged
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
//
// Parameters:
//   - n: Number of bytes to add
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by a fixed 16KiB step, buffers above 64KiB grow by 25% of their
// capacity, and never by less than requiredBytes.
//
// Parameters:
//   - requiredBytes: Free capacity needed after len(B)
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := growthDefaultSize
	if cap(bb.B) > 4*growthDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, requiredBytes)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool recycles ByteBuffers through a sync.Pool. Buffers whose capacity
// exceeds maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // 0 keeps every buffer
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
//
// Parameters:
//   - defaultSize: Initial capacity of new buffers
//   - maxThreshold: Largest capacity retained on Put, 0 for no limit
//
// Returns:
//   - *ByteBufferPool: The pool
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
//
// Returns:
//   - *ByteBuffer: An empty buffer, to be returned with Put
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
//
// Parameters:
//   - bb: Buffer to recycle; nil and oversized buffers are dropped
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	scratchPool = NewByteBufferPool(ScratchBufferDefaultSize, ScratchBufferMaxThreshold)
	framePool   = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
)

// GetScratchBuffer retrieves a ByteBuffer sized for a single packed record.
//
// Returns:
//   - *ByteBuffer: An empty buffer, to be returned with PutScratchBuffer
func GetScratchBuffer() *ByteBuffer {
	return scratchPool.Get()
}

// PutScratchBuffer returns a scratch ByteBuffer to its pool.
func PutScratchBuffer(bb *ByteBuffer) {
	scratchPool.Put(bb)
}

// GetFrameBuffer retrieves a ByteBuffer sized for a frame payload.
//
// Returns:
//   - *ByteBuffer: An empty buffer, to be returned with PutFrameBuffer
func GetFrameBuffer() *ByteBuffer {
	return framePool.Get()
}

// PutFrameBuffer returns a frame ByteBuffer to its pool.
func PutFrameBuffer(bb *ByteBuffer) {
	framePool.Put(bb)
}
