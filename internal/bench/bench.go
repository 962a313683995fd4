// Package bench summarizes criterion benchmark samples into markdown tables
// and maintains the benchmark block in the project readme.
package bench

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key identifies one benchmark within a group.
type Key struct {
	Group string
	Name  string
}

type sampleFile struct {
	Iters []float64 `json:"iters"`
	Times []float64 `json:"times"`
}

// LoadTimes walks a criterion output root and collects seconds-per-iteration
// samples from every */*/new/sample.json.
func LoadTimes(root string) (map[Key][]float64, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*", "*", "new", "sample.json"))
	if err != nil {
		return nil, err
	}
	out := map[Key][]float64{}
	for _, p := range matches {
		nameDir := filepath.Dir(filepath.Dir(p))
		key := Key{
			Group: filepath.Base(filepath.Dir(nameDir)),
			Name:  filepath.Base(nameDir),
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var sf sampleFile
		if err := json.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		n := len(sf.Iters)
		if len(sf.Times) < n {
			n = len(sf.Times)
		}
		for i := 0; i < n; i++ {
			if sf.Iters[i] == 0 {
				continue
			}
			out[key] = append(out[key], sf.Times[i]/sf.Iters[i]/1e9)
		}
	}
	return out, nil
}

// RobustMean discards the top 5% of samples (everything at or above the 95th
// percentile) and averages the rest, damping outliers from noisy runs.
func RobustMean(times []float64) float64 {
	if len(times) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	if len(sorted) < 2 {
		return sorted[0]
	}
	cut := quantile(sorted, 19, 20)
	sum, n := 0.0, 0
	for _, t := range sorted {
		if t < cut {
			sum += t
			n++
		}
	}
	if n == 0 {
		return sorted[0]
	}
	return sum / float64(n)
}

// quantile returns the i-th of n cut points over sorted data, using the
// exclusive interpolation method.
func quantile(sorted []float64, i, n int) float64 {
	ld := len(sorted)
	m := i * (ld + 1)
	j := m / n
	if j < 1 {
		j = 1
	}
	if j > ld-1 {
		j = ld - 1
	}
	delta := float64(m - j*n)
	return (sorted[j-1]*(float64(n)-delta) + sorted[j]*delta) / float64(n)
}

// Means reduces grouped samples to their robust means.
func Means(grouped map[Key][]float64) map[Key]float64 {
	out := map[Key]float64{}
	for k, times := range grouped {
		out[k] = RobustMean(times)
	}
	return out
}

// FormatMarkdown renders one table per group, fastest benchmark first, with a
// pairwise ratio column for every benchmark in the group.
func FormatMarkdown(means map[Key]float64) string {
	groupSet := map[string]struct{}{}
	for k := range means {
		groupSet[k.Group] = struct{}{}
	}
	groups := make([]string, 0, len(groupSet))
	for g := range groupSet {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var sb strings.Builder
	for _, group := range groups {
		type item struct {
			name string
			time float64
		}
		var items []item
		for k, v := range means {
			if k.Group == group {
				items = append(items, item{name: k.Name, time: v})
			}
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].time == items[j].time {
				return items[i].name < items[j].name
			}
			return items[i].time < items[j].time
		})

		header := []string{"label", "time [ms]"}
		for _, it := range items {
			name := it.name
			if len(name) > 15 {
				name = name[:15]
			}
			header = append(header, name)
		}
		rows := [][]string{header}
		for _, it := range items {
			row := []string{it.name, fmt.Sprintf("%7.2f", 1000*it.time)}
			for _, cmp := range items {
				row = append(row, fmt.Sprintf("%.2f", it.time/cmp.time))
			}
			rows = append(rows, row)
		}

		widths := make([]int, len(header))
		for _, row := range rows {
			for i, cell := range row {
				if len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}

		fmt.Fprintf(&sb, "### %s\n\n", group)
		for idx, row := range rows {
			padded := make([]string, len(row))
			for col, cell := range row {
				if col == 0 {
					padded[col] = cell + strings.Repeat(" ", widths[col]-len(cell))
				} else {
					padded[col] = strings.Repeat(" ", widths[col]-len(cell)) + cell
				}
			}
			sb.WriteString("| " + strings.Join(padded, " | ") + " |\n")
			if idx == 0 {
				seps := make([]string, len(widths))
				for i, w := range widths {
					seps[i] = strings.Repeat("-", w)
				}
				sb.WriteString("|-" + strings.Join(seps, "-|-") + "-|\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
