package memory

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
    mem := NewMemory(32)

    mem.WriteUint32(0, 0xdeadbeef)
    assert.Equal(t, uint32(0xdeadbeef), mem.ReadUint32(0))

    mem.WriteUint64(8, 0x0123456789abcdef)
    assert.Equal(t, uint64(0x0123456789abcdef), mem.ReadUint64(8))

    mem.WriteFloat32(16, 3.5)
    assert.Equal(t, float32(3.5), mem.ReadFloat32(16))

    mem.WriteFloat64(24, -0.125)
    assert.Equal(t, float64(-0.125), mem.ReadFloat64(24))

    /* unaligned offsets are fine, the codec is byte addressed */
    mem.WriteUint32(1, 7)
    assert.Equal(t, uint32(7), mem.ReadUint32(1))
}

func TestLittleEndianLayout(t *testing.T) {
    mem := NewMemory(4)
    mem.WriteUint32(0, 0x00000005)
    assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, mem.Bytes)

    mem.WriteUint32(0, 0x01020304)
    assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, mem.Bytes)
}

func TestFromBytes(t *testing.T) {
    bytes := []byte{0x2a, 0x00, 0x00, 0x00}
    mem := FromBytes(bytes)

    /* the caller's buffer is the memory, not a copy */
    assert.Equal(t, uint32(4), mem.Size())
    assert.Equal(t, uint32(42), mem.ReadUint32(0))

    mem.WriteUint32(0, 7)
    assert.Equal(t, []byte{0x07, 0x00, 0x00, 0x00}, bytes)
}

func TestGrow(t *testing.T) {
    mem := NewMemory(10)
    mem.Bytes[9] = 0xff

    previous := mem.Grow(4)
    assert.Equal(t, uint32(10), previous)
    assert.Equal(t, uint32(14), mem.Size())

    /* existing bytes survive, the new region is zero */
    assert.Equal(t, byte(0xff), mem.Bytes[9])
    for i := 10; i < 14; i++ {
        assert.Equal(t, byte(0), mem.Bytes[i])
    }
}

func TestOutOfBounds(t *testing.T) {
    mem := NewMemory(4)

    /* a read that extends past the end of memory is fatal */
    assert.Panics(t, func(){
        mem.ReadUint32(2)
    })

    assert.Panics(t, func(){
        mem.WriteUint64(0, 1)
    })
}
