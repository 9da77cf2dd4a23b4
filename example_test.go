package claseval_test

import (
	"fmt"
	"log"

	claseval "github.com/FrenchMajesty/classifier-eval"
)

func Example() {
	report, err := claseval.NewClassificationReport(3, map[string]int{
		"gratitude": 0,
		"question":  1,
		"complaint": 2,
	})
	if err != nil {
		log.Fatal(err)
	}

	predictions := []int{0, 1, 1, 1, 2, 2, 0}
	targets := []int{1, 0, 0, 1, 2, 1, 0}
	if _, err := report.Ingest(predictions, targets); err != nil {
		log.Fatal(err)
	}

	for _, mode := range []claseval.AverageMode{claseval.AverageMacro, claseval.AverageMicro} {
		scores, err := report.Scores(mode)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s precision=%.0f recall=%.0f f1=%.0f\n", mode, scores.Precision, scores.Recall, scores.F1)
	}

	// Output:
	// macro precision=44 recall=56 f1=47
	// micro precision=43 recall=43 f1=43
}
