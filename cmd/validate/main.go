// Command validate checks a Kismet capture against the normalization rules
// the analyzer relies on: payloads parse, access point and device views of
// the same record agree on shared fields, SSIDs resolve, locations are
// complete and no access point lists itself as a client. Malformed rows are reported but only fail the run with -strict.
//
// Usage:
//
//	go run ./cmd/validate -in data/mock/drive.kismet
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// parsedRow is a capture row with its decoded payload.
type parsedRow struct {
	row    domain.Row
	record domain.RawRecord
}

func main() {
	in := flag.String("in", "", "input .kismet file or postgres:// DSN")
	strict := flag.Bool("strict", false, "fail when any payload does not parse")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(context.Background(), *in, *strict, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, in string, strict bool, out io.Writer) int {
	fmt.Fprintln(out, "=== Kismet Capture Validation ===")
	fmt.Fprintln(out)

	rows, err := loadRows(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load capture: %v\n", err)
		return 1
	}

	parsed, parsePhase := validatePayloads(rows)
	phases := []*phase{
		validateSharedFields(parsed),
		validateSSIDResolution(parsed),
		validateLocations(parsed),
		validateClients(parsed),
	}
	if strict {
		phases = append([]*phase{parsePhase}, phases...)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d read, %d parsed, %d malformed\n", len(rows), len(parsed), len(parsePhase.errors))
	if !strict && !parsePhase.passed() {
		fmt.Fprintf(out, "  Note: %d malformed row(s) will be dropped by the analyzer\n", len(parsePhase.errors))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadRows(ctx context.Context, in string) (rows []domain.Row, err error) {
	src, err := kismetdb.Open(ctx, in, kismetdb.SelectAll, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, src.Close()) }()

	for {
		row, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func validatePayloads(rows []domain.Row) ([]parsedRow, *phase) {
	p := &phase{name: "Phase 1: Payloads parse"}
	parsed := make([]parsedRow, 0, len(rows))
	for _, row := range rows {
		rec, err := domain.ParseRecord(row.Payload)
		if err != nil {
			p.errorf("%s: %v", row.Key, err)
			continue
		}
		parsed = append(parsed, parsedRow{row: row, record: rec})
	}
	return parsed, p
}

// validateSharedFields builds both entity views of each access point row and
// checks that the shared radio fields agree for both location modes.
func validateSharedFields(rows []parsedRow) *phase {
	p := &phase{name: "Phase 2: AP/device shared fields"}
	for _, r := range rows {
		if r.row.Type != domain.TypeAccessPoint {
			continue
		}
		for _, strongest := range []bool{false, true} {
			ap := domain.BuildAccessPoint(r.record, strongest)
			dev := domain.BuildDevice(r.record, strongest)
			if ap.Radio != dev.Radio {
				p.errorf("%s (strongest=%t): access point %+v != device %+v", r.row.Key, strongest, ap.Radio, dev.Radio)
			}
		}
	}
	return p
}

func validateSSIDResolution(rows []parsedRow) *phase {
	p := &phase{name: "Phase 3: SSID resolution"}
	for _, r := range rows {
		if r.row.Type != domain.TypeAccessPoint {
			continue
		}
		ap := domain.BuildAccessPoint(r.record, false)
		if ap.MAC != "" && ap.SSID == "" {
			p.errorf("%s: empty SSID for MAC %s", r.row.Key, ap.MAC)
		}
	}
	return p
}

func validateLocations(rows []parsedRow) *phase {
	p := &phase{name: "Phase 4: Location completeness"}
	for _, r := range rows {
		for _, strongest := range []bool{false, true} {
			loc := domain.ResolveLocation(r.record, strongest)
			if loc.Lon == "" || loc.Lat == "" || loc.Alt == "" {
				p.errorf("%s (strongest=%t): incomplete location %+v", r.row.Key, strongest, loc)
			}
		}
	}
	return p
}

func validateClients(rows []parsedRow) *phase {
	p := &phase{name: "Phase 5: Client associations"}
	for _, r := range rows {
		if r.row.Type != domain.TypeAccessPoint {
			continue
		}
		ap := domain.BuildAccessPoint(r.record, false)
		if ap.MAC != "" && ap.Clients.Contains(ap.MAC) {
			p.errorf("%s: access point %s lists itself as a client", r.row.Key, ap.MAC)
		}
	}
	return p
}
