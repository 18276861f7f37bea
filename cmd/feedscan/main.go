package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"dedupbot/common"
	"dedupbot/dedup"
	"dedupbot/rssfeeds"
	"dedupbot/types"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	feed := flag.String("feed", rssfeeds.DefaultFeedPreset, "RSS feed preset name or URL (use -feeds to list presets)")
	count := flag.Int("count", rssfeeds.DefaultCount, "Number of articles to fetch")
	exportPath := flag.String("export", "", "Write a fingerprint export JSON to this path after scanning")
	listFeeds := flag.Bool("feeds", false, "List available feed presets and exit")
	flag.Parse()

	if *listFeeds {
		printFeedPresets()
		os.Exit(0)
	}

	feedURL := rssfeeds.ResolveFeedURL(*feed)
	log.Printf("Fetching RSS feed: %s", feedURL)

	articles, err := rssfeeds.FetchFeed(feedURL, *count)
	if err != nil {
		log.Fatalf("Failed to fetch articles: %v", err)
	}
	log.Printf("Fetched %d articles from feed", len(articles))

	log.Printf("Extracting full content using %d workers...", rssfeeds.WorkerCount)
	rssfeeds.ExtractAllContent(articles)

	successCount := 0
	for _, article := range articles {
		if article.ExtractionError == "" {
			successCount++
		}
	}
	log.Printf("Successfully extracted %d/%d articles", successCount, len(articles))

	svc := dedup.NewService(dedup.DefaultConfig())
	results := processArticles(svc, articles)
	displayResults(results, articles)

	if *exportPath != "" {
		exportAndUpload(svc, *exportPath)
	}

	log.Println("=== Scan Complete ===")
}

// processArticles runs every extracted article through the duplicate check.
func processArticles(svc *dedup.Service, articles []*types.Article) []*dedup.Result {
	items := make([]dedup.ContentItem, 0, len(articles))
	for _, article := range articles {
		if article.ExtractionError != "" {
			// Extraction failed; the summary or title still gets checked.
			log.Printf("Using fallback content for %s", article.ID)
		}
		items = append(items, article.DedupItem())
	}
	return svc.BatchCheckDuplicates(items)
}

// displayResults logs a per-article verdict and a summary line.
func displayResults(results []*dedup.Result, articles []*types.Article) {
	newCount, dupCount := 0, 0
	for i, result := range results {
		title := ""
		if i < len(articles) {
			title = articles[i].Title
		}

		if result.IsDuplicate {
			dupCount++
			log.Printf("  [%d] DUPLICATE (%s, %.2f%%): %s", i+1, result.MethodUsed, result.SimilarityScore*100, title)
		} else {
			newCount++
			log.Printf("  [%d] NEW: %s", i+1, title)
		}
	}
	log.Printf("Scan summary: %d new, %d duplicate(s)", newCount, dupCount)
}

// exportAndUpload writes the fingerprint export and, when S3 is configured
// via S3_BUCKET, uploads it for later inspection.
func exportAndUpload(svc *dedup.Service, path string) {
	if ok := svc.ExportFingerprints(path); !ok {
		log.Printf("Warning: fingerprint export failed, skipping upload")
		return
	}

	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Printf("S3 not configured; export kept local at %s", path)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := common.NewS3(ctx, common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
	})
	if err != nil {
		log.Printf("Warning: failed to create S3 client: %v", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: failed to reopen export for upload: %v", err)
		return
	}
	defer f.Close()

	prefix := strings.TrimSpace(os.Getenv("S3_PREFIX"))
	key := fmt.Sprintf("%sfingerprints-%s.json", prefix, time.Now().UTC().Format("20060102-150405"))
	if err := client.Put(ctx, bucket, key, f, "application/json"); err != nil {
		log.Printf("Warning: S3 upload failed: %v", err)
		return
	}
	log.Printf("Uploaded export to s3://%s/%s", bucket, key)
}

func printFeedPresets() {
	fmt.Println("Available feed presets:")

	names := make([]string, 0, len(rssfeeds.FeedPresets))
	for name := range rssfeeds.FeedPresets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %-12s %s\n", name, rssfeeds.FeedPresets[name])
	}
	fmt.Printf("\nDefault: %s\n", rssfeeds.DefaultFeedPreset)
}
