package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mlorentedev/fonttree/internal/analysis"
)

type analyzeRequest struct {
	DocType   string   `json:"docType,omitempty"`
	Heading   string   `json:"heading,omitempty"`
	FullText  string   `json:"fullText"`
	UsedFonts []string `json:"usedFonts"`
}

type healthResponse struct {
	Status string `json:"status"`
	Model  struct {
		Provider string `json:"provider"`
		Name     string `json:"name"`
	} `json:"model"`
}

type result struct {
	Sample      string `json:"sample"`
	Chars       int    `json:"chars"`
	Fonts       int    `json:"fonts"`
	Run         int    `json:"run"`
	WallMs      int64  `json:"wall_ms"`
	Evaluations int    `json:"evaluations"`
	Error       string `json:"error,omitempty"`
}

func main() {
	url := flag.String("url", "http://localhost:3000", "API base URL")
	apiKey := flag.String("api-key", "", "API key (optional)")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	quality := flag.Bool("quality", false, "Quality mode: show the verdict for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	model := discoverModel(client, baseURL)

	if *quality {
		runQualityMode(client, baseURL, *apiKey, model)
		return
	}

	fmt.Printf("Benchmarking against %s using model: %s (%d runs per sample", baseURL, model, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := benchmark(client, baseURL, *apiKey, sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.WallMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, *apiKey, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.WallMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL, model); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// discoverModel reads the active model from /api/health and exits when the
// server is unconfigured, since every analysis would fail.
func discoverModel(client *http.Client, baseURL string) string {
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching health: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var hr healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding health: %v\n", err)
		os.Exit(1)
	}
	if hr.Status != "ok" {
		fmt.Fprintf(os.Stderr, "Server is %s (provider %s)\n", hr.Status, hr.Model.Provider)
		os.Exit(1)
	}
	return hr.Model.Name
}

func analyze(client *http.Client, baseURL, apiKey string, sample Sample) (analysis.Report, error) {
	fonts := sample.Fonts
	if fonts == nil {
		fonts = []string{}
	}
	payload, _ := json.Marshal(analyzeRequest{
		DocType:   sample.DocType,
		Heading:   sample.Heading,
		FullText:  sample.Text,
		UsedFonts: fonts,
	})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/analyze-design", strings.NewReader(string(payload)))
	if err != nil {
		return analysis.Report{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return analysis.Report{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return analysis.Report{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rep analysis.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return analysis.Report{}, err
	}
	return rep, checkShape(rep)
}

// checkShape asserts the structure of a verdict, never its wording.
func checkShape(rep analysis.Report) error {
	if rep.Purpose == "" {
		return errors.New("missing purpose")
	}
	if rep.Mood == "" {
		return errors.New("missing mood")
	}
	for _, fe := range rep.FontEvaluations {
		if fe.Evaluation != analysis.EvaluationGood && fe.Evaluation != analysis.EvaluationNotIdeal {
			return fmt.Errorf("font %q: unexpected evaluation %q", fe.FontName, fe.Evaluation)
		}
	}
	return nil
}

func benchmark(client *http.Client, baseURL, apiKey string, sample Sample, run int) result {
	r := result{Sample: sample.Name, Chars: len(sample.Text), Fonts: len(sample.Fonts), Run: run}

	start := time.Now()
	rep, err := analyze(client, baseURL, apiKey, sample)
	r.WallMs = time.Since(start).Milliseconds()

	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Evaluations = len(rep.FontEvaluations)
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Fonts | Run | Wall (ms) | Evaluations |")
	fmt.Println("|--------|-------|-------|-----|-----------|-------------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %5d | %5d | %d | %9s | %11s |\n",
				r.Sample, r.Chars, r.Fonts, r.Run, "FAIL", "-")
			continue
		}
		fmt.Printf("| %-6s | %5d | %5d | %d | %9d | %11d |\n",
			r.Sample, r.Chars, r.Fonts, r.Run, r.WallMs, r.Evaluations)
	}
}

func runQualityMode(client *http.Client, baseURL, apiKey, model string) {
	fmt.Printf("Quality test against %s using model: %s\n", baseURL, model)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%d chars, fonts: %s) ---\n",
			i+1, len(QualitySamples), sample.Name, len(sample.Text), analysis.FontList(sample.Fonts))
		fmt.Printf("IN:  %s\n", sample.Text)

		start := time.Now()
		rep, err := analyze(client, baseURL, apiKey, sample)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			failures++
			continue
		}

		fmt.Printf("OUT: purpose=%q mood=%q\n", rep.Purpose, rep.Mood)
		for _, fe := range rep.FontEvaluations {
			line := fmt.Sprintf("     %s: %s", fe.FontName, fe.Evaluation)
			if fe.Recommendation != nil {
				line += " -> " + *fe.Recommendation
			}
			if fe.Reason != nil {
				line += " (" + *fe.Reason + ")"
			}
			fmt.Println(line)
		}
		if len(rep.FontEvaluations) != len(sample.Fonts) {
			fmt.Printf("     note: %d fonts sent, %d evaluated\n", len(sample.Fonts), len(rep.FontEvaluations))
		}
		fmt.Printf("     [%dms]\n", time.Since(start).Milliseconds())
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		os.Exit(1)
	}
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var total int64
	minWall, maxWall := ok[0].WallMs, ok[0].WallMs
	minSample, maxSample := ok[0].Sample, ok[0].Sample

	for _, r := range ok {
		total += r.WallMs
		if r.WallMs < minWall {
			minWall, minSample = r.WallMs, r.Sample
		}
		if r.WallMs > maxWall {
			maxWall, maxSample = r.WallMs, r.Sample
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg wall: %dms\n", total/int64(len(ok)))
	fmt.Printf("- Min wall: %dms (%s)\n", minWall, minSample)
	fmt.Printf("- Max wall: %dms (%s)\n", maxWall, maxSample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Model     string   `json:"model"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL, model string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Model:     model,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
