package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	claseval "github.com/FrenchMajesty/classifier-eval"
	"github.com/FrenchMajesty/classifier-eval/adapters"
	"github.com/FrenchMajesty/classifier-eval/benchmark"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	var (
		datasetPath    = flag.String("dataset", "", "path to the CSV dataset (header plus text,label rows)")
		labelList      = flag.String("labels", "", "comma-separated class labels in id order")
		classifierKind = flag.String("classifier", "llm", "prediction source: llm or vector")
		model          = flag.String("model", "", "chat model to evaluate (llm classifier only)")
		baseURL        = flag.String("base-url", "", "OpenAI-compatible endpoint (llm classifier only)")
		namespace      = flag.String("namespace", "exemplars", "pinecone namespace (vector classifier only)")
		workers        = flag.Int("workers", 4, "concurrent classification workers")
		limit          = flag.Int("limit", 0, "max samples to evaluate (0 = default cap)")
		aliasFile      = flag.String("aliases", claseval.DefaultAliasFilePath, "label alias table file")
		reportDir      = flag.String("report-dir", ".", "directory for the JSON report")
	)
	flag.Parse()

	if *datasetPath == "" {
		log.Fatal("-dataset is required")
	}
	if *labelList == "" {
		log.Fatal("-labels is required")
	}

	labels := strings.Split(*labelList, ",")
	labelIDs := make(map[string]int, len(labels))
	for i, label := range labels {
		labelIDs[strings.TrimSpace(label)] = i
	}

	registry, err := claseval.NewLabelRegistry(labelIDs)
	if err != nil {
		log.Fatal(err)
	}

	classifier, err := buildClassifier(*classifierKind, registry, *model, *baseURL, *namespace)
	if err != nil {
		log.Fatal(err)
	}

	metrics, err := benchmark.Run(context.Background(), benchmark.RunConfig{
		Classifier:       classifier,
		Registry:         registry,
		AliasPersistence: claseval.NewFileAliasPersistence(*aliasFile, registry.Labels()),
		DatasetPath:      *datasetPath,
		Limit:            *limit,
		Workers:          *workers,
	})
	if err != nil {
		log.Fatal(err)
	}

	printMetrics(metrics)

	path, err := benchmark.SaveReport(*reportDir, metrics)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nReport written to %s\n", path)
}

func buildClassifier(kind string, registry *claseval.LabelRegistry, model, baseURL, namespace string) (claseval.TextClassifier, error) {
	switch kind {
	case "llm":
		return adapters.NewLLMClassifier(nil, registry.Labels(), model, baseURL, nil)
	case "vector":
		return adapters.NewNearestNeighborClassifier(nil, nil, nil, namespace)
	default:
		return nil, fmt.Errorf("unknown classifier kind %q (want llm or vector)", kind)
	}
}

func printMetrics(metrics *benchmark.RunMetrics) {
	fmt.Printf("Run %s: %d samples, %d failures, %v total (%v/sample)\n",
		metrics.RunID, metrics.TotalSamples, metrics.Failures, metrics.TotalDuration, metrics.MeanLatency())

	for _, mode := range []claseval.AverageMode{claseval.AverageMacro, claseval.AverageMicro, claseval.AverageWeighted} {
		scores := metrics.Scores[mode]
		fmt.Printf("%-9s precision %6.2f%%  recall %6.2f%%  f1 %6.2f%%\n",
			mode, scores.Precision, scores.Recall, scores.F1)
	}
}
