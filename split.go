package nbkit

import (
	"fmt"
	"strconv"
	"strings"
)

// EvenPlan distributes totalCells across numFiles as evenly as
// possible: the first totalCells%numFiles entries get one extra cell.
// numFiles must be between 1 and totalCells.
func EvenPlan(totalCells, numFiles int) ([]int, error) {
	if numFiles < 1 || numFiles > totalCells {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidFileCount, numFiles, totalCells)
	}

	base := totalCells / numFiles
	remainder := totalCells % numFiles

	plan := make([]int, numFiles)
	for i := range plan {
		plan[i] = base
		if i < remainder {
			plan[i]++
		}
	}
	return plan, nil
}

// ParseCounts parses a comma-separated list of per-file cell counts,
// such as "5,3,4". Fullwidth commas are accepted. All entries must be
// positive integers. A trailing comma appends a zero-valued slot
// meaning "dump the remaining cells here"; the slot's value is
// resolved by ReconcilePlan.
func ParseCounts(input string) ([]int, error) {
	input = strings.ReplaceAll(input, "，", ",")
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	trailing := strings.HasSuffix(input, ",")

	var counts []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCounts, part)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCounts, n)
		}
		counts = append(counts, n)
	}

	if trailing && len(counts) > 0 {
		counts = append(counts, 0)
	}
	return counts, nil
}

// ReconcilePlan adjusts plan so its entries sum exactly to totalCells.
// If the plan over-allocates, entries are truncated left to right so
// the running total never exceeds totalCells; entries past the point
// of exhaustion become zero. If it under-allocates, the shortfall is
// added entirely to the last entry. The input slice is not modified.
func ReconcilePlan(plan []int, totalCells int) []int {
	if len(plan) == 0 {
		return nil
	}

	out := make([]int, len(plan))
	used := 0
	for i, n := range plan {
		if n > totalCells-used {
			n = totalCells - used
		}
		if n < 0 {
			n = 0
		}
		out[i] = n
		used += n
	}

	if used < totalCells {
		out[len(out)-1] += totalCells - used
	}
	return out
}

// ApplyPlan walks the plan left to right, assigning a contiguous,
// order-preserving run of plan[i] cells to output i. Zero entries
// produce no output. Each part shares the source notebook's metadata
// and format version. The returned leftover count is the number of
// cells not covered by the plan; it is zero whenever the plan was
// reconciled against the notebook's cell count.
func ApplyPlan(nb *Notebook, plan []int) (parts []*Notebook, leftover int) {
	start := 0
	for _, n := range plan {
		if n <= 0 {
			continue
		}
		end := start + n
		if end > len(nb.Cells) {
			end = len(nb.Cells)
		}
		parts = append(parts, &Notebook{
			Cells:       nb.Cells[start:end],
			Metadata:    nb.Metadata,
			Format:      nb.Format,
			FormatMinor: nb.FormatMinor,
		})
		start = end
	}
	return parts, len(nb.Cells) - start
}
