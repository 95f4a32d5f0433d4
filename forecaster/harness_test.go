package forecaster

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrainPredictSaveLoadHarness(t *testing.T) {
	history := makeHistory(t, []string{"A", "B"}, 50)

	model, err := TrainPredictor(history, testSchema(), testConfig())
	if err != nil {
		t.Fatalf("TrainPredictor failed: %v", err)
	}

	future := makeFuture(t, []string{"A", "B"}, 50, 5)
	out, err := PredictWithModel(model, future, "prediction")
	if err != nil {
		t.Fatalf("PredictWithModel failed: %v", err)
	}
	if out.NumRows() != 10 {
		t.Fatalf("output rows = %d, want 10", out.NumRows())
	}

	// SavePredictor creates the directory if it does not exist yet.
	dir := filepath.Join(t.TempDir(), "artifacts", "model")
	if err := SavePredictor(model, dir); err != nil {
		t.Fatalf("SavePredictor failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, PredictorFileName)); err != nil {
		t.Fatalf("predictor file missing: %v", err)
	}

	loaded, err := LoadPredictor(dir)
	if err != nil {
		t.Fatalf("LoadPredictor failed: %v", err)
	}
	out2, err := PredictWithModel(loaded, future, "prediction")
	if err != nil {
		t.Fatalf("PredictWithModel after load failed: %v", err)
	}
	if out2.NumRows() != out.NumRows() {
		t.Fatalf("row count changed after load: %d vs %d", out2.NumRows(), out.NumRows())
	}
}

func TestEvaluatePredictor(t *testing.T) {
	model, err := TrainPredictor(makeHistory(t, []string{"A", "B"}, 50), testSchema(), testConfig())
	if err != nil {
		t.Fatalf("TrainPredictor failed: %v", err)
	}

	// Held-out panel with actual target values for the horizon.
	holdout := makeFuture(t, []string{"A", "B"}, 50, 5)
	actual := make([]float64, holdout.NumRows())
	for i := range actual {
		base := 100.0
		if i >= 5 {
			base = 200.0
		}
		step := 50 + i%5
		actual[i] = base + 0.7*float64(step) + float64(step%7)
	}
	if err := holdout.AddFloatColumn("sales", actual); err != nil {
		t.Fatalf("AddFloatColumn failed: %v", err)
	}

	smape, err := EvaluatePredictor(model, holdout)
	if err != nil {
		t.Fatalf("EvaluatePredictor failed: %v", err)
	}
	if smape < 0 || smape > 200 {
		t.Errorf("sMAPE = %v, want within [0, 200]", smape)
	}
}
