package batch

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"taxrecon/internal/domain"
	"taxrecon/internal/service"
)

// Pair names one audit/return document pair to reconcile.
type Pair struct {
	AuditPath  string
	ReturnPath string
	Category   string
}

// Outcome is the result of reconciling one pair. Err is set only for
// acquisition failures; extraction trouble lands in Report.Diagnostics.
type Outcome struct {
	Pair   Pair
	Report *domain.Report
	Err    error
}

// Mismatches counts the clauses whose amounts disagree.
func (o *Outcome) Mismatches() int {
	if o.Report == nil {
		return 0
	}
	n := 0
	for _, row := range o.Report.Rows {
		if row.Status == domain.StatusMismatch {
			n++
		}
	}
	return n
}

// ReadManifest parses a batch manifest: one pair per line as
// "audit-path,itr-path[,category]". Blank lines and #-comments are
// skipped.
func ReadManifest(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	var pairs []Pair
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("manifest line %d: want audit-path,itr-path[,category]", line)
		}
		p := Pair{
			AuditPath:  strings.TrimSpace(fields[0]),
			ReturnPath: strings.TrimSpace(fields[1]),
		}
		if len(fields) > 2 {
			p.Category = strings.TrimSpace(fields[2])
		}
		if p.AuditPath == "" || p.ReturnPath == "" {
			return nil, fmt.Errorf("manifest line %d: empty document path", line)
		}
		pairs = append(pairs, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return pairs, nil
}

// Runner reconciles document pairs concurrently. Each pair is an
// independent run, so failures stay confined to their own outcome.
type Runner struct {
	svc         service.ReconService
	concurrency int
}

// NewRunner creates a Runner dispatching at most concurrency pairs at once.
func NewRunner(svc service.ReconService, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{svc: svc, concurrency: concurrency}
}

// Run reconciles every pair and returns outcomes in manifest order.
func (r *Runner) Run(ctx context.Context, pairs []Pair) []Outcome {
	outcomes := make([]Outcome, len(pairs))
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for i := range pairs {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			outcomes[i] = r.reconcilePair(ctx, pairs[i])
		}(i)
	}
	wg.Wait()
	return outcomes
}

func (r *Runner) reconcilePair(ctx context.Context, p Pair) Outcome {
	out := Outcome{Pair: p}

	audit, err := readDocument(p.AuditPath)
	if err != nil {
		out.Err = err
		return out
	}
	ret, err := readDocument(p.ReturnPath)
	if err != nil {
		out.Err = err
		return out
	}

	report, err := r.svc.Reconcile(ctx, service.ReconcileInput{
		Audit:    audit,
		Return:   ret,
		Category: p.Category,
	})
	if err != nil {
		out.Err = err
		return out
	}
	out.Report = report
	log.Printf("batch.Runner: reconciled %s against %s, %d mismatches",
		p.AuditPath, p.ReturnPath, out.Mismatches())
	return out
}

func readDocument(path string) (service.DocumentInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return service.DocumentInput{}, fmt.Errorf("read document: %w", err)
	}
	return service.DocumentInput{Content: content, Name: path}, nil
}
