package service

import (
	"context"
	"fmt"
	"strings"

	"ai-moderouter-be/internal/config"
	"ai-moderouter-be/internal/dto"
	"ai-moderouter-be/internal/pkg/logger"
	"ai-moderouter-be/internal/pkg/serverutils"
	"ai-moderouter-be/internal/repository/memory"
	"ai-moderouter-be/pkg/classifier"

	"github.com/google/uuid"
)

// IDetectorService is the decision engine: it owns the routing policy and
// the final invariant pass over whatever the classifier suggests.
type IDetectorService interface {
	Detect(ctx context.Context, request *dto.DetectModeRequest) (*dto.DetectModeResponse, error)
}

// ModeClassifier is the LLM-backed collaborator. It never fails; degraded
// behavior is its problem, invariants are ours.
type ModeClassifier interface {
	Classify(ctx context.Context, query string, hasSelection bool, selectionDesc string) classifier.Result
}

const detectModule = "ModeDetector"

// Forced and override reasons used by the deterministic branches.
const (
	reasonDocumentTooLarge  = "document too large - use retrieval"
	reasonSearchUnavailable = "web search unavailable with files selected - using retrieval"
	reasonDefault           = "classifier analysis"
)

type detectorService struct {
	classifier ModeClassifier
	verdicts   *memory.VerdictRepository // nil disables caching
	logger     logger.ILogger
	routing    config.RoutingConfig
}

func NewDetectorService(
	modeClassifier ModeClassifier,
	verdicts *memory.VerdictRepository,
	sysLogger logger.ILogger,
	routing config.RoutingConfig,
) IDetectorService {
	return &detectorService{
		classifier: modeClassifier,
		verdicts:   verdicts,
		logger:     sysLogger,
		routing:    routing,
	}
}

// Detect routes a query to BASIC, QA or SEARCH.
//
// Policy:
//  1. File/folder selected -> never SEARCH
//     - tokens above the threshold -> always QA (no classifier call)
//     - tokens fit -> classifier decides QA vs BASIC
//  2. No selection -> classifier decides SEARCH vs BASIC
func (ds *detectorService) Detect(ctx context.Context, request *dto.DetectModeRequest) (*dto.DetectModeResponse, error) {
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, serverutils.NewBadRequestError("query must not be empty")
	}

	tokenLimit := request.TokenLimit
	if tokenLimit <= 0 {
		tokenLimit = ds.routing.DefaultTokenLimit
	}
	tokenThreshold := int(float64(tokenLimit) * ds.routing.ContextThresholdRatio)

	requestId := uuid.New().String()
	ds.logger.Info(detectModule, "Detecting mode", map[string]interface{}{
		"request_id":      requestId,
		"query":           truncate(query, 50),
		"token_limit":     tokenLimit,
		"token_threshold": tokenThreshold,
	})

	hasFolder := request.SelectedFolderId != "" || len(request.SelectedDatastores) > 0
	hasFiles := len(request.SelectedFiles) > 0 || len(request.SelectedFileIds) > 0
	hasSelection := hasFolder || hasFiles

	if hasSelection {
		totalTokens := ds.calculateTotalTokens(request)
		selectionDesc := buildSelectionDescription(request)

		ds.logger.Info(detectModule, "Selection present", map[string]interface{}{
			"request_id":   requestId,
			"selection":    selectionDesc,
			"total_tokens": totalTokens,
		})

		// RULE: tokens above the threshold force QA, no classifier call
		if totalTokens > tokenThreshold {
			ds.logger.Info(detectModule, "Tokens exceed threshold, forcing QA", map[string]interface{}{
				"request_id":      requestId,
				"total_tokens":    totalTokens,
				"token_threshold": tokenThreshold,
			})
			return newVerdict(classifier.ModeQA, ds.routing.ForcedConfidence, reasonDocumentTooLarge), nil
		}

		result := ds.classify(ctx, query, true, selectionDesc)

		// SEARCH is invalid whenever any selection exists
		if result.Mode == classifier.ModeSearch {
			result.Mode = classifier.ModeQA
			result.Reason = reasonSearchUnavailable
		}

		return newVerdict(result.Mode, ds.routing.ClassifierConfidence, reasonOrDefault(result.Reason)), nil
	}

	ds.logger.Info(detectModule, "No selection, classifier decides SEARCH vs BASIC", map[string]interface{}{
		"request_id": requestId,
	})
	result := ds.classify(ctx, query, false, "")

	// QA is invalid without a selection
	if result.Mode == classifier.ModeQA {
		result.Mode = classifier.ModeBasic
	}

	return newVerdict(result.Mode, ds.routing.ClassifierConfidence, reasonOrDefault(result.Reason)), nil
}

// classify delegates to the classifier, consulting the verdict cache first.
func (ds *detectorService) classify(ctx context.Context, query string, hasSelection bool, selectionDesc string) classifier.Result {
	if ds.verdicts == nil {
		return ds.classifier.Classify(ctx, query, hasSelection, selectionDesc)
	}

	key := fmt.Sprintf("%t|%s|%s", hasSelection, selectionDesc, query)
	if cached, found := ds.verdicts.Get(key); found {
		ds.logger.Debug(detectModule, "Verdict cache hit", map[string]interface{}{
			"mode": cached.Mode.String(),
		})
		return cached
	}

	result := ds.classifier.Classify(ctx, query, hasSelection, selectionDesc)
	ds.verdicts.Save(key, result)
	return result
}

// calculateTotalTokens sums descriptor sizes over datastores and files.
// A selection made of bare ids with no descriptors has an unknown size and
// is assumed worst-case so the threshold rule fires.
func (ds *detectorService) calculateTotalTokens(request *dto.DetectModeRequest) int {
	total := 0

	for _, datastore := range request.SelectedDatastores {
		total += datastore.TotalTokenSize
	}
	for _, file := range request.SelectedFiles {
		total += file.TokenSize
	}

	if total == 0 && (len(request.SelectedFileIds) > 0 || request.SelectedFolderId != "") {
		ds.logger.Warn(detectModule, "Selection without token info, assuming worst case", nil)
		return ds.routing.UnknownSizeTokens
	}

	return total
}

// buildSelectionDescription renders a human-readable description of the
// selection for the classifier prompt: names over bare ids, at most two
// names per fragment with a "+N" suffix, fragments joined with " | ".
func buildSelectionDescription(request *dto.DetectModeRequest) string {
	var parts []string

	if len(request.SelectedDatastores) > 0 {
		names := make([]string, 0, 3)
		for _, datastore := range request.SelectedDatastores[:min(2, len(request.SelectedDatastores))] {
			names = append(names, datastore.Name)
		}
		if len(request.SelectedDatastores) > 2 {
			names = append(names, fmt.Sprintf("+%d", len(request.SelectedDatastores)-2))
		}
		parts = append(parts, "datastores: "+strings.Join(names, ", "))
	} else if request.SelectedFolderId != "" {
		parts = append(parts, "datastore id: "+truncate(request.SelectedFolderId, 8))
	}

	if len(request.SelectedFiles) > 0 {
		names := make([]string, 0, 3)
		for _, file := range request.SelectedFiles[:min(2, len(request.SelectedFiles))] {
			names = append(names, truncateName(file.Name, 20))
		}
		if len(request.SelectedFiles) > 2 {
			names = append(names, fmt.Sprintf("+%d", len(request.SelectedFiles)-2))
		}
		parts = append(parts, "files: "+strings.Join(names, ", "))
	} else if len(request.SelectedFileIds) > 0 {
		parts = append(parts, fmt.Sprintf("%d file(s)", len(request.SelectedFileIds)))
	}

	if len(parts) == 0 {
		return "selection"
	}
	return strings.Join(parts, " | ")
}

func newVerdict(mode classifier.Mode, confidence float64, reason string) *dto.DetectModeResponse {
	return &dto.DetectModeResponse{
		Mode:       mode.String(),
		Confidence: &confidence,
		Reason:     &reason,
	}
}

func reasonOrDefault(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return reasonDefault
	}
	return reason
}

// truncate shortens a string with an ellipsis marker for logs and ids.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// truncateName hard-caps a display name without a marker.
func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
