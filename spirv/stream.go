package spirv

import (
	"encoding/binary"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Instruction is a decoded view of a single instruction. Operands
// aliases the stream's buffer and is invalidated by structural edits;
// rewrite passes must re-read through a cursor after Insert or Erase.
type Instruction struct {
	Opcode   Opcode
	Operands []uint32
}

// InstructionStream owns the flat word buffer of a SPIR-V module,
// including the 5-word header. The buffer is exclusively owned: edits
// never alias another stream.
type InstructionStream struct {
	words []uint32
}

// NewInstructionStream creates a stream backed by a copy of words.
// The slice must contain at least the 5-word header.
func NewInstructionStream(words []uint32) *InstructionStream {
	return &InstructionStream{words: slices.Clone(words)}
}

// NewEmptyStream creates a stream holding only a header with the given
// ID bound. The version word encodes SPIR-V 1.0.
func NewEmptyStream(bound uint32) *InstructionStream {
	return &InstructionStream{words: []uint32{
		MagicNumber,
		1 << 16, // version 1.0
		GeneratorID,
		bound,
		0, // schema
	}}
}

// StreamFromBytes decodes a little-endian SPIR-V binary into a stream.
func StreamFromBytes(data []byte) (*InstructionStream, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("spirv: binary size %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return &InstructionStream{words: words}, nil
}

// Words returns the backing word buffer. The caller must not mutate it;
// use the edit methods instead.
func (s *InstructionStream) Words() []uint32 {
	return s.words
}

// Bytes serializes the stream to a little-endian binary.
func (s *InstructionStream) Bytes() []byte {
	data := make([]byte, len(s.words)*4)
	for i, w := range s.words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}

// Len returns the total length of the stream in words.
func (s *InstructionStream) Len() int {
	return len(s.words)
}

// Bound returns the ID bound stored in the header: one past the highest
// identifier used by the module.
func (s *InstructionStream) Bound() uint32 {
	return s.words[HeaderBoundIndex]
}

// AllocateID returns the current ID bound and increments it, keeping
// the header in sync. Every returned identifier is unique.
func (s *InstructionStream) AllocateID() uint32 {
	id := s.words[HeaderBoundIndex]
	s.words[HeaderBoundIndex] = id + 1
	return id
}

// Validate checks the header and the instruction framing: the stream
// must hold a full header and every instruction must have a nonzero
// word count that stays within the buffer.
func (s *InstructionStream) Validate() error {
	if len(s.words) < HeaderWords {
		return fmt.Errorf("spirv: module too short: %d words", len(s.words))
	}
	if s.words[HeaderMagicIndex] != MagicNumber {
		return fmt.Errorf("spirv: wrong magic number 0x%08X", s.words[HeaderMagicIndex])
	}
	pos := HeaderWords
	for pos < len(s.words) {
		wc := int(s.words[pos] >> WordCountShift)
		if wc == 0 {
			return fmt.Errorf("spirv: zero word count at word %d", pos)
		}
		if pos+wc > len(s.words) {
			return fmt.Errorf("spirv: instruction at word %d overruns module end", pos)
		}
		pos += wc
	}
	return nil
}

// firstWord packs an instruction's opcode and total word count.
// Instruction length is bounded by the uint16 count field; overflow
// indicates a caller bug.
func firstWord(op Opcode, wordCount int) uint32 {
	wc, err := safecast.Conv[uint16](wordCount)
	if err != nil {
		panic(fmt.Errorf("spirv: instruction word count overflow: %w", err))
	}
	return uint32(wc)<<WordCountShift | uint32(op)
}

// Append adds an instruction at the end of the stream.
func (s *InstructionStream) Append(op Opcode, operands ...uint32) {
	s.words = append(s.words, firstWord(op, len(operands)+1))
	s.words = append(s.words, operands...)
}

// Cursor addresses one instruction by its word offset. Cursors remain
// valid across edits at or after their position only if re-obtained
// from the returned cursor of the edit; cursors strictly before the
// edit point stay valid as-is.
type Cursor struct {
	stream *InstructionStream
	pos    int
}

// Begin returns a cursor at the first instruction after the header.
func (s *InstructionStream) Begin() Cursor {
	return Cursor{stream: s, pos: HeaderWords}
}

// End reports whether the cursor is past the last instruction.
func (c Cursor) End() bool {
	return c.pos >= len(c.stream.words)
}

// Next returns a cursor at the following instruction.
func (c Cursor) Next() Cursor {
	wc := c.wordCount()
	if wc == 0 {
		// Corrupt framing; Validate rejects this up front.
		return Cursor{stream: c.stream, pos: len(c.stream.words)}
	}
	return Cursor{stream: c.stream, pos: c.pos + wc}
}

func (c Cursor) wordCount() int {
	return int(c.stream.words[c.pos] >> WordCountShift)
}

// Opcode returns the instruction's opcode.
func (c Cursor) Opcode() Opcode {
	return Opcode(c.stream.words[c.pos] & OpcodeMask)
}

// NumOperands returns the number of operand words (word count minus
// the leading opcode word).
func (c Cursor) NumOperands() int {
	return c.wordCount() - 1
}

// Operand returns operand word i.
func (c Cursor) Operand(i int) uint32 {
	return c.stream.words[c.pos+1+i]
}

// SetOperand overwrites operand word i in place.
func (c Cursor) SetOperand(i int, v uint32) {
	c.stream.words[c.pos+1+i] = v
}

// Operands returns the operand words as a view into the buffer.
func (c Cursor) Operands() []uint32 {
	return c.stream.words[c.pos+1 : c.pos+c.wordCount()]
}

// Instruction returns a decoded view of the instruction at the cursor.
func (c Cursor) Instruction() Instruction {
	return Instruction{Opcode: c.Opcode(), Operands: c.Operands()}
}

// Insert places a new instruction immediately before c and returns a
// cursor to the inserted instruction.
func (s *InstructionStream) Insert(c Cursor, op Opcode, operands []uint32) Cursor {
	inst := make([]uint32, 0, len(operands)+1)
	inst = append(inst, firstWord(op, len(operands)+1))
	inst = append(inst, operands...)
	s.words = slices.Insert(s.words, c.pos, inst...)
	return Cursor{stream: s, pos: c.pos}
}

// Erase removes the instruction at c and returns a cursor to the next
// instruction (now occupying the same offset).
func (s *InstructionStream) Erase(c Cursor) Cursor {
	s.words = slices.Delete(s.words, c.pos, c.pos+c.wordCount())
	return Cursor{stream: s, pos: c.pos}
}

// EraseOperand removes operand word i from the instruction at c and
// decrements its length field. Returns a cursor to the same, now
// shorter, instruction.
func (s *InstructionStream) EraseOperand(c Cursor, i int) Cursor {
	wc := c.wordCount()
	s.words[c.pos] = firstWord(c.Opcode(), wc-1)
	s.words = slices.Delete(s.words, c.pos+1+i, c.pos+2+i)
	return Cursor{stream: s, pos: c.pos}
}

// Strip returns a new stream holding the header plus every instruction
// whose opcode is not debug/diagnostic-only. Stripping an already
// stripped stream yields content-equal output.
func (s *InstructionStream) Strip() *InstructionStream {
	copyWords := make([]uint32, HeaderWords, len(s.words))
	copy(copyWords, s.words[:HeaderWords])

	for it := s.Begin(); !it.End(); it = it.Next() {
		if !IsDebugOpcode(it.Opcode()) {
			copyWords = append(copyWords, s.words[it.pos:it.pos+it.wordCount()]...)
		}
	}
	return &InstructionStream{words: copyWords}
}

// EncodeString encodes a literal string operand: null-terminated UTF-8
// padded to a word boundary.
func EncodeString(text string) []uint32 {
	raw := append([]byte(text), 0)
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) |
			uint32(raw[i*4+1])<<8 |
			uint32(raw[i*4+2])<<16 |
			uint32(raw[i*4+3])<<24
	}
	return words
}

// DecodeString decodes a literal string operand, stopping at the first
// NUL byte.
func DecodeString(words []uint32) string {
	raw := make([]byte, 0, len(words)*4)
	for _, w := range words {
		raw = append(raw, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}
