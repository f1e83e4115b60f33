package ingestion

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestIngestFile_Outcomes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "NEGS_20240105.txt", negsFile("20240105", "0308", 3))
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		repo       *fakeRepoIngestion
		window     sessionWindow
		force      bool
		wantStatus fileStatus
		wantTrades int
	}{
		{name: "new document", repo: &fakeRepoIngestion{}, wantStatus: statusIngested, wantTrades: 3},
		{name: "outside window", repo: &fakeRepoIngestion{}, window: newSessionWindow(1, monday), wantStatus: statusOutOfWindow},
		{name: "inside window", repo: &fakeRepoIngestion{}, window: newSessionWindow(2, monday), wantStatus: statusIngested, wantTrades: 3},
		{name: "already stored", repo: &fakeRepoIngestion{has: map[string]bool{docKey(day, "308"): true}}, wantStatus: statusSkipped},
		{name: "forced replace", repo: &fakeRepoIngestion{has: map[string]bool{docKey(day, "308"): true}}, force: true, wantStatus: statusReplaced, wantTrades: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ingestFile(context.Background(), path, tc.repo, tc.window, nil, Options{Force: tc.force, BatchSize: 2})
			if err != nil {
				t.Fatalf("ingestFile: %v", err)
			}
			if out.status != tc.wantStatus || out.trades != tc.wantTrades || out.session != "20240105" {
				t.Fatalf("got %+v (status %s)", out, out.status)
			}
			if tc.repo.trades() != tc.wantTrades {
				t.Fatalf("repo got %d trades want %d", tc.repo.trades(), tc.wantTrades)
			}
		})
	}
}

func TestIngestFile_ConcurrentInsertConflict(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", negsFile("20240105", "0308", 2))
	b := writeFile(t, dir, "b.txt", negsFile("20240105", "0308", 2))
	repo := &fakeRepoIngestion{delay: 50 * time.Millisecond}

	// without run claims both files pass the existence check; the store decides
	var (
		wg   sync.WaitGroup
		outs [2]outcome
		errs [2]error
	)
	for i, p := range []string{a, b} {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			outs[i], errs[i] = ingestFile(context.Background(), p, repo, nil, nil, Options{BatchSize: 10})
		}()
	}
	wg.Wait()

	statuses := map[fileStatus]int{}
	for i := range outs {
		if errs[i] != nil {
			t.Fatalf("file %d: %v", i, errs[i])
		}
		statuses[outs[i].status]++
	}
	if statuses[statusIngested] != 1 || statuses[statusSkipped] != 1 || repo.trades() != 2 {
		t.Fatalf("unexpected outcomes: %+v", outs)
	}
}

func TestIngestFile_RunClaims(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", negsFile("20240105", "0308", 2))
	b := writeFile(t, dir, "b.txt", negsFile("20240105", "0308", 2))
	repo := &fakeRepoIngestion{}
	claims := newDocClaims()

	if out, err := ingestFile(context.Background(), a, repo, nil, claims, Options{}); err != nil || out.status != statusIngested {
		t.Fatalf("first copy: %+v %v", out, err)
	}
	out, err := ingestFile(context.Background(), b, repo, nil, claims, Options{Force: true})
	if err != nil || out.status != statusSkipped || out.dupOf != "a.txt" {
		t.Fatalf("second copy: %+v %v", out, err)
	}
	if repo.replaced != nil {
		t.Fatalf("a repeated document must not replace the first copy")
	}
}

func TestIngestFile_BadSessionDate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.txt", negsFile("2024XX05", "0308", 0))
	if _, err := ingestFile(context.Background(), path, &fakeRepoIngestion{}, nil, nil, Options{}); err == nil {
		t.Fatalf("expected error for unparsable data_pregao")
	}
}

func TestFileStatus_String(t *testing.T) {
	for s, want := range map[fileStatus]string{
		statusIngested:    "ingested",
		statusReplaced:    "replaced",
		statusSkipped:     "skipped",
		statusOutOfWindow: "out_of_window",
		fileStatus(42):    "unknown",
	} {
		if s.String() != want {
			t.Fatalf("%d: got %q want %q", s, s.String(), want)
		}
	}
}
