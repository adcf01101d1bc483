package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/validation"
)

// Filter selects the rows written to the output
type Filter string

const (
	FilterInvalid Filter = "invalid"
	FilterAll     Filter = "all"
	FilterNoRoad  Filter = "no-road"
)

// maxUnitExamples is how many example addresses are kept per property type
const maxUnitExamples = 5

// Validator is the pipeline entry point used for every row
type Validator interface {
	Validate(ctx context.Context, raw, country string, seed map[string]any) (*validation.Context, error)
}

// Result pairs an input row with its finished context
type Result struct {
	Record  Record
	Context *validation.Context
}

// PropertyType is the first filtered category, or UNKNOWN
func (r Result) PropertyType() string {
	if r.Context.PropertyType == "" {
		return UnknownPropertyType
	}
	return r.Context.PropertyType
}

// Summary describes a finished batch
type Summary struct {
	Total    int
	Skipped  int
	Written  int
	ByStatus map[validation.Status]int
	// Up to five raw addresses per property type where the row supplied a unit
	UnitExamples map[string][]string
}

// Runner validates CSV rows with bounded concurrency
type Runner struct {
	Validator Validator
	Country   string
	Workers   int
	Filter    Filter
	Log       *zap.Logger
}

// OutputPath is input with "_validated" appended to the file stem
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_validated" + ext
}

// RunFile validates the CSV at input and writes OutputPath(input)
func (r *Runner) RunFile(ctx context.Context, input string) (string, Summary, error) {
	in, err := os.Open(input)
	if err != nil {
		return "", Summary{}, fmt.Errorf("failed to open file %s: %w", input, err)
	}
	defer in.Close()

	records, err := ReadRecords(in)
	if err != nil {
		return "", Summary{}, fmt.Errorf("failed to read %s: %w", input, err)
	}

	results, summary, err := r.Validate(ctx, records)
	if err != nil {
		return "", summary, err
	}
	selected := r.Select(results)
	summary.Written = len(selected)

	output := OutputPath(input)
	out, err := os.Create(output)
	if err != nil {
		return "", summary, fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := WriteResults(out, selected); err != nil {
		out.Close()
		return "", summary, err
	}
	if err := out.Close(); err != nil {
		return "", summary, fmt.Errorf("failed to close %s: %w", output, err)
	}

	logging.OrNop(r.Log).Info("batch complete",
		zap.String("output", output),
		zap.Int("total", summary.Total),
		zap.Int("skipped", summary.Skipped),
		zap.Int("written", summary.Written),
	)
	return output, summary, nil
}

// Validate runs every non-blank record through the validator. Results keep input
// order; blank records are skipped.
func (r *Runner) Validate(ctx context.Context, records []Record) ([]Result, Summary, error) {
	log := logging.OrNop(r.Log)
	summary := Summary{
		Total:        len(records),
		ByStatus:     make(map[validation.Status]int),
		UnitExamples: make(map[string][]string),
	}

	contexts := make([]*validation.Context, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))

	for i, rec := range records {
		if rec.Blank() {
			continue
		}
		g.Go(func() error {
			vc, err := r.Validator.Validate(gctx, rec.RawAddress(), r.Country, rec.Seed())
			if err != nil {
				return fmt.Errorf("line %d: %w", rec.Line, err)
			}
			contexts[i] = vc
			log.Debug("row validated", zap.Int("line", rec.Line), zap.String("status", string(vc.Status)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, summary, err
	}

	results := make([]Result, 0, len(records))
	for i, rec := range records {
		vc := contexts[i]
		if vc == nil {
			summary.Skipped++
			continue
		}
		res := Result{Record: rec, Context: vc}
		results = append(results, res)
		summary.ByStatus[vc.Status]++

		if vc.ParsedOrEmpty().UnitNumber != "" {
			pt := res.PropertyType()
			if len(summary.UnitExamples[pt]) < maxUnitExamples {
				summary.UnitExamples[pt] = append(summary.UnitExamples[pt], rec.RawAddress())
			}
		}
	}
	return results, summary, nil
}

// Select applies the runner's filter
func (r *Runner) Select(results []Result) []Result {
	selected := make([]Result, 0, len(results))
	for _, res := range results {
		switch r.Filter {
		case FilterAll:
		case FilterNoRoad:
			if res.Context.ParsedOrEmpty().StreetName != "" {
				continue
			}
		default:
			if res.Context.Valid() {
				continue
			}
		}
		selected = append(selected, res)
	}
	return selected
}

// ParseFilter accepts invalid, all or no-road
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(s)); f {
	case FilterInvalid, FilterAll, FilterNoRoad:
		return f, nil
	case "":
		return FilterInvalid, nil
	}
	return "", fmt.Errorf("unknown filter %q (want invalid, all or no-road)", s)
}
