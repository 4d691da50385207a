package memory

import (
    "encoding/binary"
    "math"
)

/* a growable, byte addressed linear memory. all multi-byte accesses are
 * little-endian. an access past the end of the buffer is a fatal runtime
 * panic, the same bounds the underlying slice enforces
 */
type Memory struct {
    Bytes []byte
}

func NewMemory(size uint32) *Memory {
    return &Memory{
        Bytes: make([]byte, size),
    }
}

func FromBytes(bytes []byte) *Memory {
    return &Memory{
        Bytes: bytes,
    }
}

func (memory *Memory) Size() uint32 {
    return uint32(len(memory.Bytes))
}

/* appends 'delta' zero bytes and returns the size before growing */
func (memory *Memory) Grow(delta uint32) uint32 {
    previous := memory.Size()
    memory.Bytes = append(memory.Bytes, make([]byte, delta)...)
    return previous
}

func (memory *Memory) ReadUint32(offset uint32) uint32 {
    return binary.LittleEndian.Uint32(memory.Bytes[offset:])
}

func (memory *Memory) WriteUint32(offset uint32, value uint32){
    binary.LittleEndian.PutUint32(memory.Bytes[offset:], value)
}

func (memory *Memory) ReadUint64(offset uint32) uint64 {
    return binary.LittleEndian.Uint64(memory.Bytes[offset:])
}

func (memory *Memory) WriteUint64(offset uint32, value uint64){
    binary.LittleEndian.PutUint64(memory.Bytes[offset:], value)
}

func (memory *Memory) ReadFloat32(offset uint32) float32 {
    return math.Float32frombits(memory.ReadUint32(offset))
}

func (memory *Memory) WriteFloat32(offset uint32, value float32){
    memory.WriteUint32(offset, math.Float32bits(value))
}

func (memory *Memory) ReadFloat64(offset uint32) float64 {
    return math.Float64frombits(memory.ReadUint64(offset))
}

func (memory *Memory) WriteFloat64(offset uint32, value float64){
    memory.WriteUint64(offset, math.Float64bits(value))
}
