// Package chip8 provides the CHIP-8 data primitives and the instruction codec.
// It models the byte and nibble quantities instructions are decoded in, the
// 12-bit address space, the 16 general registers, the 16-key input set and the
// closed instruction set of 35 operations with a bidirectional opcode mapping.
package chip8
