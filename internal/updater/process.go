package updater

import (
	"fmt"
	"sync"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/model"
)

const defaultProcessWorkers = 4

// ProcessAll runs one transform pass over an export: every row is matched
// against the tag files and, on a match, its click and impression URLs are
// rewritten. Rows are independent and the tag index is read-only, so the
// per-row work is spread over a worker pool; the log is assembled in
// original row order afterwards.
func ProcessAll(ads []model.AdRecord, tagFiles []model.TagFile, workerCount int) model.ProcessResult {
	if workerCount <= 0 {
		workerCount = defaultProcessWorkers
	}

	idx := BuildTagIndex(tagFiles)

	updated := make([]model.AdRecord, len(ads))
	copy(updated, ads)
	matched := make([]bool, len(ads))

	rowCh := make(chan int, workerCount*2)

	var wg sync.WaitGroup
	wg.Add(workerCount)

	// Track match and update stats
	var matchesFound, clickUpdates, impressionUpdates int
	var mu sync.Mutex

	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			workerMatches := 0
			workerClicks := 0
			workerImpressions := 0

			for row := range rowCh {
				rec := &updated[row]
				tag := idx.FindMatch(*rec)
				if tag == nil {
					continue
				}
				matched[row] = true
				workerMatches++

				newClickURL := UpdateClickURL(rec.ClickURL, tag.ClickTracker, rec.CampaignName)
				if newClickURL != rec.ClickURL {
					rec.ClickURL = newClickURL
					workerClicks++
				}

				if tag.ImpressionTracker != "" {
					// Replacement is unconditional once a non-empty URL is
					// extracted; the prior value is not consulted.
					if extracted := ExtractImpressionURL(tag.ImpressionTracker); extracted != "" {
						rec.ImpressionTrackingURL = extracted
						workerImpressions++
					}
				}
			}

			// Update global counters
			mu.Lock()
			matchesFound += workerMatches
			clickUpdates += workerClicks
			impressionUpdates += workerImpressions
			mu.Unlock()
		}()
	}

	for row := range updated {
		rowCh <- row
	}
	close(rowCh)
	wg.Wait()

	summary := model.Summary{
		TotalRows:            len(ads),
		MatchesFound:         matchesFound,
		ClickURLUpdates:      clickUpdates,
		ImpressionURLUpdates: impressionUpdates,
	}

	logLines := make([]string, 0, len(ads)+6)
	logLines = append(logLines,
		"Processing complete:",
		fmt.Sprintf("  • Total rows processed: %d", summary.TotalRows),
		fmt.Sprintf("  • Matches found: %d", summary.MatchesFound),
		fmt.Sprintf("  • Click URL updates: %d", summary.ClickURLUpdates),
		fmt.Sprintf("  • Impression URL updates: %d", summary.ImpressionURLUpdates),
		"",
	)
	for row, ad := range ads {
		if !matched[row] {
			// Raw, untrimmed field values in the log line.
			logLines = append(logLines, fmt.Sprintf(
				"No match found for: Campaign='%s', Ad Group='%s', Ad='%s'",
				ad.CampaignName, ad.AdGroupName, ad.AdName))
		}
	}

	return model.ProcessResult{
		Records:  updated,
		LogLines: logLines,
		Summary:  summary,
	}
}
