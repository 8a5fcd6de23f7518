package service

import (
	"context"
	"testing"

	"ai-moderouter-be/internal/config"
	"ai-moderouter-be/internal/dto"
	"ai-moderouter-be/internal/pkg/logger"
	"ai-moderouter-be/pkg/classifier"
)

// stubClassifier returns a scripted result and records invocations.
type stubClassifier struct {
	result classifier.Result
	calls  int

	lastHasSelection  bool
	lastSelectionDesc string
}

func (s *stubClassifier) Classify(ctx context.Context, query string, hasSelection bool, selectionDesc string) classifier.Result {
	s.calls++
	s.lastHasSelection = hasSelection
	s.lastSelectionDesc = selectionDesc
	return s.result
}

func testRouting() config.RoutingConfig {
	return config.RoutingConfig{
		DefaultTokenLimit:     980000,
		ContextThresholdRatio: 0.7,
		ForcedConfidence:      0.95,
		ClassifierConfidence:  0.90,
		UnknownSizeTokens:     999999999,
	}
}

func newTestService(stub *stubClassifier) IDetectorService {
	// nil verdict cache: every call reaches the stub
	return NewDetectorService(stub, nil, logger.NewNopLogger(), testRouting())
}

func TestDetectLargeSelectionForcesQA(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeBasic, Reason: "should not be used"}}
	svc := newTestService(stub)

	// threshold = floor(980000 * 0.7) = 686000
	req := &dto.DetectModeRequest{
		Query:      "What's the weather today?",
		TokenLimit: 980000,
		SelectedFiles: []dto.SelectedFileInfo{
			{Id: "f1", Name: "big.pdf", TokenSize: 800000},
		},
	}

	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "QA" {
		t.Errorf("Mode = %q, want QA", res.Mode)
	}
	if res.Confidence == nil || *res.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", res.Confidence)
	}
	if stub.calls != 0 {
		t.Errorf("classifier calls = %d, want 0 (forced verdict)", stub.calls)
	}
}

func TestDetectSelectionAtThresholdDelegates(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeQA, Reason: "find author"}}
	svc := newTestService(stub)

	// exactly at the threshold: not above, so the classifier decides
	req := &dto.DetectModeRequest{
		Query:      "Who wrote chapter 3?",
		TokenLimit: 1000000,
		SelectedFiles: []dto.SelectedFileInfo{
			{Id: "f1", Name: "book.pdf", TokenSize: 700000},
		},
	}

	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "QA" {
		t.Errorf("Mode = %q, want QA", res.Mode)
	}
	if res.Confidence == nil || *res.Confidence != 0.90 {
		t.Errorf("Confidence = %v, want 0.90", res.Confidence)
	}
	if res.Reason == nil || *res.Reason != "find author" {
		t.Errorf("Reason = %v, want %q", res.Reason, "find author")
	}
	if stub.calls != 1 {
		t.Errorf("classifier calls = %d, want 1", stub.calls)
	}
	if !stub.lastHasSelection {
		t.Error("classifier called without selection context")
	}
}

func TestDetectSelectionNeverSearch(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeSearch, Reason: "look online"}}
	svc := newTestService(stub)

	req := &dto.DetectModeRequest{
		Query: "latest revenue figures",
		SelectedFiles: []dto.SelectedFileInfo{
			{Id: "f1", Name: "report.pdf", TokenSize: 1000},
		},
	}

	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "QA" {
		t.Errorf("Mode = %q, want QA (SEARCH invalid with selection)", res.Mode)
	}
	if res.Reason == nil || *res.Reason != reasonSearchUnavailable {
		t.Errorf("Reason = %v, want override %q", res.Reason, reasonSearchUnavailable)
	}
}

func TestDetectNoSelectionNeverQA(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeQA, Reason: "search documents"}}
	svc := newTestService(stub)

	req := &dto.DetectModeRequest{Query: "explain photosynthesis"}

	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "BASIC" {
		t.Errorf("Mode = %q, want BASIC (QA invalid without selection)", res.Mode)
	}
	if stub.lastHasSelection {
		t.Error("classifier called with selection context")
	}
}

func TestDetectNoSelectionSearchPassesThrough(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeSearch, Reason: "check current weather"}}
	svc := newTestService(stub)

	req := &dto.DetectModeRequest{Query: "What's the weather today?"}

	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "SEARCH" {
		t.Errorf("Mode = %q, want SEARCH", res.Mode)
	}
	if res.Confidence == nil || *res.Confidence != 0.90 {
		t.Errorf("Confidence = %v, want 0.90", res.Confidence)
	}
	if res.Reason == nil || *res.Reason != "check current weather" {
		t.Errorf("Reason = %v, want pass-through", res.Reason)
	}
}

func TestDetectBareIdsAssumeWorstCase(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.DetectModeRequest
	}{
		{
			name: "bare file ids only",
			req: &dto.DetectModeRequest{
				Query:           "anything",
				SelectedFileIds: []string{"f1", "f2"},
			},
		},
		{
			name: "bare folder id only",
			req: &dto.DetectModeRequest{
				Query:            "anything",
				SelectedFolderId: "0f8e2a11-aaaa-bbbb-cccc-121314151617",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeBasic}}
			svc := newTestService(stub)

			res, err := svc.Detect(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if res.Mode != "QA" {
				t.Errorf("Mode = %q, want forced QA (unknown size)", res.Mode)
			}
			if res.Confidence == nil || *res.Confidence != 0.95 {
				t.Errorf("Confidence = %v, want 0.95", res.Confidence)
			}
			if stub.calls != 0 {
				t.Errorf("classifier calls = %d, want 0", stub.calls)
			}
		})
	}
}

func TestDetectTokenAggregationAcrossLists(t *testing.T) {
	// datastores and files sum together; order of descriptors is irrelevant
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeQA, Reason: "ok"}}
	svc := newTestService(stub)

	req := &dto.DetectModeRequest{
		Query:      "anything",
		TokenLimit: 1000,
		SelectedDatastores: []dto.SelectedDatastoreInfo{
			{Id: "d1", Name: "A", TotalTokenSize: 300},
			{Id: "d2", Name: "B", TotalTokenSize: 200},
		},
		SelectedFiles: []dto.SelectedFileInfo{
			{Id: "f1", Name: "x", TokenSize: 201},
		},
	}

	// total 701 > threshold 700: forced QA
	res, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Mode != "QA" || stub.calls != 0 {
		t.Errorf("Mode = %q, calls = %d, want forced QA with no classifier call", res.Mode, stub.calls)
	}

	// drop one token: 700 is not above 700, classifier decides
	req.SelectedFiles[0].TokenSize = 200
	if _, err := svc.Detect(context.Background(), req); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("classifier calls = %d, want 1 at the boundary", stub.calls)
	}
}

func TestDetectIdempotent(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeSearch, Reason: "check news"}}
	svc := newTestService(stub)

	req := &dto.DetectModeRequest{Query: "news about Go 1.24"}

	first, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	second, err := svc.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if first.Mode != second.Mode || *first.Confidence != *second.Confidence || *first.Reason != *second.Reason {
		t.Errorf("verdicts differ: %+v vs %+v", first, second)
	}
}

func TestDetectEmptyQueryRejected(t *testing.T) {
	stub := &stubClassifier{}
	svc := newTestService(stub)

	if _, err := svc.Detect(context.Background(), &dto.DetectModeRequest{Query: "   "}); err == nil {
		t.Error("Detect() with blank query: want error, got nil")
	}
}

func TestDetectDefaultReason(t *testing.T) {
	stub := &stubClassifier{result: classifier.Result{Mode: classifier.ModeBasic, Reason: ""}}
	svc := newTestService(stub)

	res, err := svc.Detect(context.Background(), &dto.DetectModeRequest{Query: "hello"})
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.Reason == nil || *res.Reason != reasonDefault {
		t.Errorf("Reason = %v, want default %q", res.Reason, reasonDefault)
	}
}

func TestBuildSelectionDescription(t *testing.T) {
	tests := []struct {
		name string
		req  dto.DetectModeRequest
		want string
	}{
		{
			name: "two datastores by name",
			req: dto.DetectModeRequest{
				SelectedDatastores: []dto.SelectedDatastoreInfo{
					{Name: "Contracts"}, {Name: "Invoices"},
				},
			},
			want: "datastores: Contracts, Invoices",
		},
		{
			name: "datastore overflow gets +N suffix",
			req: dto.DetectModeRequest{
				SelectedDatastores: []dto.SelectedDatastoreInfo{
					{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
				},
			},
			want: "datastores: A, B, +2",
		},
		{
			name: "bare folder id truncated",
			req: dto.DetectModeRequest{
				SelectedFolderId: "0f8e2a11-aaaa-bbbb-cccc-121314151617",
			},
			want: "datastore id: 0f8e2a11...",
		},
		{
			name: "file names truncated to 20 chars",
			req: dto.DetectModeRequest{
				SelectedFiles: []dto.SelectedFileInfo{
					{Name: "a-very-long-file-name-that-keeps-going.pdf"},
				},
			},
			want: "files: a-very-long-file-nam",
		},
		{
			name: "bare file ids counted",
			req: dto.DetectModeRequest{
				SelectedFileIds: []string{"f1", "f2", "f3"},
			},
			want: "3 file(s)",
		},
		{
			name: "datastores and files joined",
			req: dto.DetectModeRequest{
				SelectedDatastores: []dto.SelectedDatastoreInfo{{Name: "Archive"}},
				SelectedFiles:      []dto.SelectedFileInfo{{Name: "notes.txt"}},
			},
			want: "datastores: Archive | files: notes.txt",
		},
		{
			name: "nothing renders to generic label",
			req:  dto.DetectModeRequest{},
			want: "selection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSelectionDescription(&tt.req); got != tt.want {
				t.Errorf("buildSelectionDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
