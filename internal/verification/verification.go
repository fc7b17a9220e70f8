// Package verification verifies that a generated listing recreates the input.
package verification

import (
	"fmt"

	"github.com/retroenv/chip8emu/internal/assembler"
	"github.com/retroenv/chip8emu/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// VerifyListing reassembles the listing and verifies that it recreates the
// exact ROM image it was generated from.
func VerifyListing(logger *log.Logger, rom *memory.ROM, listing string) error {
	reassembled, err := assembler.Assemble(listing)
	if err != nil {
		return fmt.Errorf("reassembling listing: %w", err)
	}

	if err := checkBufferEqual(logger, rom.Bytes(), reassembled.Bytes()); err != nil {
		return fmt.Errorf("ROM mismatch: %w", err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs < 10 {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
