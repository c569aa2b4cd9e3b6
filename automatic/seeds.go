package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

const seedFileHeader = "# opening seeds, one base64 (URL-safe, unpadded) 32-byte seed per line\n"

// GenerateSeeds returns n fresh seeds for reproducible random openings.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		seeds[i] = frand.Entropy256()
	}
	return seeds
}

// SaveSeeds writes seeds to path in the format LoadSeeds reads.
func SaveSeeds(seeds [][32]byte, path string) error {
	var sb strings.Builder
	sb.WriteString(seedFileHeader)
	for _, seed := range seeds {
		sb.WriteString(base64.RawURLEncoding.EncodeToString(seed[:]))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}
	return nil
}

// LoadSeeds reads a seed file. Blank lines and lines starting with # are
// skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("seed on line %d: %w", lineNum, err)
		}
		if len(raw) != 32 {
			return nil, fmt.Errorf("seed on line %d has %d bytes, want 32", lineNum, len(raw))
		}
		seeds = append(seeds, [32]byte(raw))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return seeds, nil
}
